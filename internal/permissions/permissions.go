// Package permissions содержит правила доступа к курсам и урокам.
//
// Все предикаты — чистые функции без побочных эффектов, тотальные на любом
// входе: nil-сущность означает отказ, а не панику. Права создателя курса
// не делегируются; права инструктора аддитивны — инструктор создает уроки,
// но не редактирует ни курс, ни чужие уроки.
//
// Идентификаторы приходят из хранилища то числом, то строкой, поэтому
// каждое сравнение идет через models.SameID.
package permissions

import "github.com/magabrotheeeer/course-manager/internal/models"

// IsCourseCreator сообщает, что пользователь — создатель курса.
func IsCourseCreator(course *models.Course, userID models.ID) bool {
	if course == nil {
		return false
	}
	return models.SameID(course.CreatorID, userID)
}

// IsCourseInstructor сообщает, что пользователь входит в список
// инструкторов курса.
func IsCourseInstructor(course *models.Course, userID models.ID) bool {
	if course == nil {
		return false
	}
	return models.ContainsID(course.Instructors, userID)
}

// CanEditCourse сообщает, может ли пользователь редактировать курс
// и управлять списком его инструкторов. Может только создатель.
func CanEditCourse(course *models.Course, userID models.ID) bool {
	return IsCourseCreator(course, userID)
}

// CanCreateLesson сообщает, может ли пользователь создавать уроки курса.
// Могут инструкторы курса и его создатель.
func CanCreateLesson(course *models.Course, userID models.ID) bool {
	return IsCourseInstructor(course, userID) || IsCourseCreator(course, userID)
}

// CanEditLesson сообщает, может ли пользователь редактировать или удалять
// урок. Могут автор урока и создатель курса.
func CanEditLesson(lesson *models.Lesson, course *models.Course, userID models.ID) bool {
	if lesson == nil {
		return false
	}
	return models.SameID(lesson.CreatorID, userID) || IsCourseCreator(course, userID)
}

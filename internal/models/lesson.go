package models

// LessonStatus — статус урока. Статус меняется только явно при
// редактировании, автоматических переходов нет.
type LessonStatus string

// Возможные статусы урока.
const (
	LessonDraft     LessonStatus = "draft"
	LessonPublished LessonStatus = "published"
	LessonArchived  LessonStatus = "archived"
)

// Valid сообщает, что статус принадлежит известному набору.
func (s LessonStatus) Valid() bool {
	switch s {
	case LessonDraft, LessonPublished, LessonArchived:
		return true
	}
	return false
}

// Lesson представляет урок курса. Привязка к курсу неизменяема.
type Lesson struct {
	ID          ID           `json:"id,omitempty"` // Идентификатор записи
	Title       string       `json:"title"`        // Название урока
	Status      LessonStatus `json:"status"`       // draft, published или archived
	PublishDate string       `json:"publish_date"` // Дата публикации, ISO-датавремя
	VideoURL    string       `json:"video_url"`    // Ссылка на видео
	CourseID    ID           `json:"course_id"`    // Курс, которому принадлежит урок
	CreatorID   ID           `json:"creator_id"`   // Автор урока
}

// LessonForm используется для приёма данных формы урока
// до конвертации в Lesson.
type LessonForm struct {
	Title       string `json:"title" validate:"required,min=3"`
	Status      string `json:"status" validate:"required,oneof=draft published archived"`
	PublishDate string `json:"publish_date" validate:"required"`
	VideoURL    string `json:"video_url" validate:"required,url"`
}

package models

// Course представляет курс. Создатель курса неизменяем после создания
// и всегда входит в список инструкторов.
type Course struct {
	ID          ID     `json:"id,omitempty"`          // Идентификатор записи
	Name        string `json:"name"`                  // Название курса
	Description string `json:"description,omitempty"` // Описание
	StartDate   string `json:"start_date"`            // Дата начала, ISO-дата (2006-01-02)
	EndDate     string `json:"end_date"`              // Дата окончания, строго позже начала
	CreatorID   ID     `json:"creator_id"`            // Создатель курса
	Instructors []ID   `json:"instructors"`           // Инструкторы курса
}

// CourseForm используется для приёма данных формы курса
// до конвертации в Course.
type CourseForm struct {
	Name        string `json:"name" validate:"required,min=3"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
}

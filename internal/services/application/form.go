// Package application собирает заявку из данных формы и сохраняет её:
// сначала загружается скриншот оплаты, затем создаётся запись.
package application

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrUpload скриншот не удалось загрузить, запись не создавалась.
	ErrUpload = errors.New("payment slip upload failed")
	// ErrStore запись не удалось сохранить, загруженный скриншот удалён.
	ErrStore = errors.New("application could not be saved")
)

// Form данные формы регистрации в том виде, в котором они пришли от клиента.
type Form struct {
	FullName          string   `json:"full_name" validate:"required"`
	Email             string   `json:"email" validate:"required"`
	Phone             string   `json:"phone" validate:"required"`
	Telegram          string   `json:"telegram" validate:"required,startswith=@,min=2"`
	Country           string   `json:"country" validate:"required"`
	Plan              string   `json:"plan" validate:"required"`
	Duration          int      `json:"duration" validate:"required"`
	Format            string   `json:"format"`
	IsStudent         bool     `json:"is_student"`
	StudentClasses    []string `json:"student_classes"`
	OtherStudentClass string   `json:"other_class"`
}

// Proof загруженный файл со скриншотом оплаты.
type Proof struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// FieldError нарушение правила для одного поля формы.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError все нарушения формы сразу, а не только первое.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid application: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field, msg string) {
	for _, f := range e.Fields {
		if f.Field == field {
			return
		}
	}
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

// Has сообщает, есть ли ошибка для поля.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

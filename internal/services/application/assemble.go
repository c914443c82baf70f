package application

import (
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/catalog"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/models"
)

// ClassDelimiter разделитель классов в колонке rta_class_name.
const ClassDelimiter = ", "

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "startswith":
		return "must start with " + fe.Param()
	case "min":
		return "must have at least one character after @"
	default:
		return "is not valid"
	}
}

// Assemble проверяет форму и собирает заявку в статусе pending.
// Все правила проверяются независимо, ошибки возвращаются одним *ValidationError.
// Программа для студентов доступна только на 12 месяцев: при другом сроке флаг и классы сбрасываются.
func Assemble(form Form, proof *Proof) (*models.Application, error) {
	form = normalize(form)
	verr := &ValidationError{}

	if err := validate.Struct(form); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				verr.add(fe.Field(), fieldMessage(fe))
			}
		} else {
			verr.add("form", err.Error())
		}
	}

	tier, err := catalog.ParseTier(form.Plan)
	if err != nil && form.Plan != "" {
		verr.add("plan", "must be one of Essential, Professional, Premium")
	}

	duration, durErr := catalog.ParseDuration(form.Duration)
	if durErr != nil && form.Duration != 0 {
		verr.add("duration", "must be 3, 6 or 12")
	}

	country, err := catalog.ParseCountry(form.Country)
	if err != nil && form.Country != "" {
		verr.add("country", "must be Myanmar or Thailand")
	}

	var format catalog.SoftwareFormat
	switch {
	case tier == catalog.Premium:
		format = catalog.FormatBoth
	case form.Format == "":
		verr.add("format", "is required")
	default:
		format, err = catalog.ParseSoftwareFormat(form.Format)
		if err != nil {
			verr.add("format", "is not a known software format")
		}
	}

	isStudent := form.IsStudent && (duration == catalog.TwelveMonths || durErr != nil)
	var classes []string
	var other string
	if isStudent {
		classes = form.StudentClasses
		if len(classes) == 0 {
			verr.add("student_classes", "select at least one class")
		}
		known := catalog.StudentClasses()
		for _, c := range classes {
			if !slices.Contains(known, c) {
				verr.add("student_classes", "unknown class "+c)
			}
		}
		if slices.Contains(classes, catalog.OtherClass) {
			other = form.OtherStudentClass
			if other == "" {
				verr.add("other_class", "specify the class name for Other")
			}
		}
	}

	if proof == nil || proof.Body == nil || proof.Size == 0 {
		verr.add("payment_slip", "is required")
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	price := catalog.PriceFor(tier, duration)
	cur := country.Currency()
	return &models.Application{
		FullName:          form.FullName,
		Email:             form.Email,
		Phone:             form.Phone,
		Telegram:          form.Telegram,
		Country:           country,
		Plan:              tier,
		Duration:          duration,
		Format:            format,
		IsStudent:         isStudent,
		StudentClasses:    classes,
		OtherStudentClass: other,
		Amount:            catalog.Convert(price.Total, cur),
		Currency:          cur,
		PaymentMethod:     country.PaymentMethod(),
		Status:            models.StatusPending,
	}, nil
}

func normalize(form Form) Form {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Telegram = strings.TrimSpace(form.Telegram)
	form.Country = strings.TrimSpace(form.Country)
	form.Plan = strings.TrimSpace(form.Plan)
	form.Format = strings.TrimSpace(form.Format)
	form.OtherStudentClass = strings.TrimSpace(form.OtherStudentClass)

	classes := make([]string, 0, len(form.StudentClasses))
	for _, c := range form.StudentClasses {
		if c = strings.TrimSpace(c); c != "" && !slices.Contains(classes, c) {
			classes = append(classes, c)
		}
	}
	form.StudentClasses = classes
	return form
}

// JoinClasses склеивает классы через ClassDelimiter и добавляет "другой" класс в конец.
func JoinClasses(classes []string, other string) string {
	joined := strings.Join(classes, ClassDelimiter)
	if other == "" {
		return joined
	}
	if joined == "" {
		return other
	}
	return joined + ClassDelimiter + other
}

// ToRecord раскладывает заявку в строку таблицы. Сумма пишется отформатированной
// только в колонку своей валюты, вторая остаётся NULL.
func ToRecord(app *models.Application) models.Record {
	display := app.AmountDisplay()
	rec := models.Record{
		ID:               app.ID,
		FullName:         app.FullName,
		Email:            app.Email,
		PhoneNumber:      app.Phone,
		TelegramUsername: app.Telegram,
		PlanTier:         string(app.Plan),
		PlanDuration:     app.Duration.Label(),
		Amount:           app.Amount,
		Currency:         string(app.Currency),
		IsRtaStudent:     app.IsStudent,
		RtaClassName:     JoinClasses(app.StudentClasses, app.OtherStudentClass),
		SoftwareFormat:   string(app.Format),
		PaymentMethod:    app.PaymentMethod,
		PaymentSlipURL:   app.PaymentSlipURL,
		Status:           string(app.Status),
		EndDate:          app.EndDate,
		CreatedAt:        app.CreatedAt,
	}
	if app.Currency == catalog.MMK {
		rec.AmountMMK = &display
	} else {
		rec.AmountTHB = &display
	}
	return rec
}

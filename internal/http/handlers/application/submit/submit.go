// Package submit принимает multipart-форму регистрации со скриншотом оплаты.
package submit

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/response"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/services/application"
)

// FileField имя поля формы со скриншотом оплаты.
const FileField = "payment_slip"

// formOverhead запас на текстовые поля формы сверх размера файла.
const formOverhead = 1 << 20

type Service interface {
	Submit(ctx context.Context, form application.Form, proof *application.Proof) (*application.Result, error)
}

type Handler struct {
	log            *slog.Logger
	service        Service
	maxUploadBytes int64
}

func New(log *slog.Logger, service Service, maxUploadBytes int64) *Handler {
	return &Handler{
		log:            log,
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// ServeHTTP godoc
// @Summary Подать заявку на подписку
// @Description Проверяет форму, загружает скриншот оплаты и создаёт заявку в статусе pending.
// @Description Все ошибки формы возвращаются сразу списком в data.
// @Tags Applications
// @Accept multipart/form-data
// @Produce json
// @Param full_name formData string true "Имя"
// @Param email formData string true "Email"
// @Param phone formData string true "Телефон"
// @Param telegram formData string true "Ник в Telegram, начинается с @"
// @Param country formData string true "Myanmar или Thailand"
// @Param plan formData string true "Essential, Professional или Premium"
// @Param duration formData int true "3, 6 или 12"
// @Param format formData string false "3ds Max, SketchUp или Both 3ds Max & SketchUp"
// @Param is_student formData bool false "Слушатель занятий"
// @Param student_classes formData []string false "Занятия" collectionFormat(multi)
// @Param other_class formData string false "Название занятия для Other"
// @Param payment_slip formData file true "Скриншот оплаты"
// @Success 201 {object} response.Response{data=application.Result}
// @Failure 400 {object} response.ErrorResponse "Некорректная форма"
// @Failure 413 {object} response.ErrorResponse "Слишком большой файл"
// @Failure 422 {object} response.Response{data=[]application.FieldError} "Ошибки заполнения"
// @Failure 502 {object} response.ErrorResponse "Не удалось загрузить скриншот"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /applications [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.application.submit"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+formOverhead)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Info("request body too large", slog.Int64("limit", tooLarge.Limit))
			render.Status(r, http.StatusRequestEntityTooLarge)
			render.JSON(w, r, response.Error("payment slip is too large"))
			return
		}
		log.Info("failed to parse multipart form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	form := formFromRequest(r)

	var proof *application.Proof
	file, header, err := r.FormFile(FileField)
	switch {
	case err == nil:
		defer file.Close()
		proof = proofFrom(file, header)
	case errors.Is(err, http.ErrMissingFile):
	default:
		log.Info("failed to read payment slip", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid payment slip"))
		return
	}

	res, err := h.service.Submit(r.Context(), form, proof)
	if err != nil {
		var verr *application.ValidationError
		switch {
		case errors.As(err, &verr):
			log.Info("application rejected", slog.Int("fields", len(verr.Fields)))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.FieldsError("please fix the highlighted fields", verr.Fields))
		case errors.Is(err, application.ErrUpload):
			log.Error("payment slip upload failed", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error("could not upload payment slip, please try again"))
		default:
			log.Error("failed to submit application", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not save application"))
		}
		return
	}

	log.Info("application accepted", slog.Int64("id", res.Application.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(res))
}

func formFromRequest(r *http.Request) application.Form {
	duration, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("duration")))
	return application.Form{
		FullName:          r.FormValue("full_name"),
		Email:             r.FormValue("email"),
		Phone:             r.FormValue("phone"),
		Telegram:          r.FormValue("telegram"),
		Country:           r.FormValue("country"),
		Plan:              r.FormValue("plan"),
		Duration:          duration,
		Format:            r.FormValue("format"),
		IsStudent:         parseBool(r.FormValue("is_student")),
		StudentClasses:    r.MultipartForm.Value["student_classes"],
		OtherStudentClass: r.FormValue("other_class"),
	}
}

func proofFrom(file multipart.File, header *multipart.FileHeader) *application.Proof {
	return &application.Proof{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}
}

// parseBool понимает значения чекбокса: "on", "true", "1".
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

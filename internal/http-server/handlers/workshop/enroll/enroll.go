package enroll

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"workshopBooker/internal/enrollment"
	"workshopBooker/internal/http-server/handlers/workshop"
	"workshopBooker/internal/lib/api/response"
	"workshopBooker/internal/lib/logger/sl"
	"workshopBooker/internal/models"
)

type Request struct {
	Email     string `json:"email" validate:"required"`
	Nome      string `json:"nome" validate:"required"`
	OficinaID int64  `json:"oficina_id" validate:"required,gt=0"`
	Turno     string `json:"turno" validate:"required"`
}

type Response struct {
	response.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Enroller
type Enroller interface {
	Enroll(ctx context.Context, req enrollment.EnrollRequest) error
}

func New(log *slog.Logger, enroller Enroller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workshop.enroll.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ErrorWithKind("failed to decode request", enrollment.KindInvalidInput.String()))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			resp := response.ValidationError(validateErr)
			resp.Kind = enrollment.KindInvalidInput.String()
			render.JSON(w, r, resp)
			return
		}

		err = enroller.Enroll(r.Context(), enrollment.EnrollRequest{
			Email:     req.Email,
			Name:      req.Nome,
			SessionID: req.OficinaID,
			Shift:     models.Shift(req.Turno),
		})
		if err != nil {
			log.Error("failed to enroll", sl.Err(err))

			msg := enrollment.PublicMessage(err)
			if enrollment.KindOf(err) == enrollment.KindStorage {
				msg = "failed to enroll"
			}

			render.Status(r, workshop.StatusFor(err))
			render.JSON(w, r, response.ErrorWithKind(msg, enrollment.KindOf(err).String()))
			return
		}

		log.Info("registrant enrolled", slog.String("email", req.Email), slog.Int64("oficina_id", req.OficinaID))

		responseOK(w, r)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Response{
		Response: response.OK(),
	})
}

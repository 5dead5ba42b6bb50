package editEnrollment

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

const updated = "Inscrição atualizada com sucesso"

type Request struct {
	Email         string `json:"email" validate:"required"`
	NovaOficinaID int64  `json:"nova_oficina_id" validate:"required,gt=0"`
	NovoTurno     string `json:"novo_turno" validate:"required"`
	// OficinaAtualID is optional: zero moves the registrant's sole enrollment.
	OficinaAtualID int64 `json:"oficina_atual_id,omitempty" validate:"omitempty,gt=0"`
}

type Response struct {
	response.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Transferer
type Transferer interface {
	Transfer(ctx context.Context, req enrollment.TransferRequest) error
}

func New(log *slog.Logger, transferer Transferer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workshop.editEnrollment.New"

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

		err = transferer.Transfer(r.Context(), enrollment.TransferRequest{
			Email:         req.Email,
			FromSessionID: req.OficinaAtualID,
			SessionID:     req.NovaOficinaID,
			Shift:         models.Shift(req.NovoTurno),
		})
		if err != nil {
			log.Error("failed to update enrollment", sl.Err(err))

			msg := enrollment.PublicMessage(err)
			if enrollment.KindOf(err) == enrollment.KindStorage {
				msg = "failed to update enrollment"
			}

			render.Status(r, workshop.StatusFor(err))
			render.JSON(w, r, response.ErrorWithKind(msg, enrollment.KindOf(err).String()))
			return
		}

		log.Info("enrollment updated",
			slog.String("email", req.Email),
			slog.Int64("nova_oficina_id", req.NovaOficinaID),
			slog.String("novo_turno", req.NovoTurno),
		)

		responseOK(w, r)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Response{
		Response: response.OKWithMessage(updated),
	})
}

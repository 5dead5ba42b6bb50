package seed

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

const confirmation = "Oficinas inseridas com sucesso"

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Seeder
type Seeder interface {
	Seed(ctx context.Context, specs []models.SessionSpec) ([]int64, error)
}

func New(log *slog.Logger, seeder Seeder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workshop.seed.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req []models.SessionSpec

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ErrorWithKind("failed to decode request", enrollment.KindInvalidInput.String()))
			return
		}

		log.Info("request body decoded", slog.Int("sessions", len(req)))

		validate := validator.New()
		for _, spec := range req {
			if err = validate.Struct(spec); err != nil {
				var validateErr validator.ValidationErrors
				errors.As(err, &validateErr)

				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				resp := response.ValidationError(validateErr)
				resp.Kind = enrollment.KindInvalidInput.String()
				render.JSON(w, r, resp)
				return
			}
		}

		ids, err := seeder.Seed(r.Context(), req)
		if err != nil {
			log.Error("failed to seed sessions", sl.Err(err))

			msg := enrollment.PublicMessage(err)
			if enrollment.KindOf(err) == enrollment.KindStorage {
				msg = "failed to seed sessions"
			}

			render.Status(r, workshop.StatusFor(err))
			render.JSON(w, r, response.ErrorWithKind(msg, enrollment.KindOf(err).String()))
			return
		}

		log.Info("sessions seeded", slog.Int("count", len(ids)))

		render.PlainText(w, r, confirmation)
	}
}

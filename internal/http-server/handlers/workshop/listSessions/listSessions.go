package listSessions

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"workshopBooker/internal/enrollment"
	"workshopBooker/internal/lib/api/response"
	"workshopBooker/internal/lib/logger/sl"
	"workshopBooker/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SessionsGetter
type SessionsGetter interface {
	ListSessions(ctx context.Context) ([]models.Session, error)
}

func New(log *slog.Logger, sessionsGetter SessionsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workshop.listSessions.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sessions, err := sessionsGetter.ListSessions(r.Context())
		if err != nil {
			log.Error("failed to get sessions", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ErrorWithKind("failed to get sessions", enrollment.KindOf(err).String()))
			return
		}

		log.Info("sessions retrieved successfully", slog.Int("count", len(sessions)))

		if sessions == nil {
			sessions = []models.Session{}
		}

		render.JSON(w, r, sessions)
	}
}

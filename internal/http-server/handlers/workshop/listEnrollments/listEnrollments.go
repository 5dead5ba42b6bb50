package listEnrollments

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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EnrollmentsGetter
type EnrollmentsGetter interface {
	List(ctx context.Context) ([]models.EnrollmentDetail, error)
}

func New(log *slog.Logger, enrollmentsGetter EnrollmentsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workshop.listEnrollments.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		details, err := enrollmentsGetter.List(r.Context())
		if err != nil {
			log.Error("failed to get enrollments", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ErrorWithKind("failed to get enrollments", enrollment.KindOf(err).String()))
			return
		}

		log.Info("enrollments retrieved successfully", slog.Int("count", len(details)))

		if details == nil {
			details = []models.EnrollmentDetail{}
		}

		render.JSON(w, r, details)
	}
}

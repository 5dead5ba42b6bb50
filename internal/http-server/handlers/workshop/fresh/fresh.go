package fresh

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"workshopBooker/internal/enrollment"
	"workshopBooker/internal/lib/api/response"
	"workshopBooker/internal/lib/logger/sl"
)

const cleared = "Todas as tabelas foram limpas com sucesso"

type Response struct {
	response.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Resetter
type Resetter interface {
	Reset(ctx context.Context) error
}

func New(log *slog.Logger, resetter Resetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workshop.fresh.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := resetter.Reset(r.Context()); err != nil {
			log.Error("failed to clear tables", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ErrorWithKind("failed to clear tables", enrollment.KindOf(err).String()))
			return
		}

		log.Info("all tables cleared")

		render.JSON(w, r, Response{
			Response: response.OKWithMessage(cleared),
		})
	}
}

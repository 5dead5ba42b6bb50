package fresh

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"workshopBooker/internal/http-server/handlers/workshop/fresh/mocks"
	"workshopBooker/internal/lib/logger/handlers/slogdiscard"
)

func TestFreshHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"sucesso":true,"mensagem":"Todas as tabelas foram limpas com sucesso"}`,
		},
		{
			name:           "Storage error",
			err:            errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"sucesso":false,"error":"failed to clear tables","kind":"storage_error"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockResetter := mocks.NewResetter(t)
			mockResetter.On("Reset", mock.Anything).Return(tc.err)

			router := chi.NewRouter()
			router.Post("/fresh", New(logger, mockResetter))

			req, err := http.NewRequest(http.MethodPost, "/fresh", nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}

package seed

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"workshopBooker/internal/enrollment"
	"workshopBooker/internal/http-server/handlers/workshop/seed/mocks"
	"workshopBooker/internal/lib/logger/handlers/slogdiscard"
	"workshopBooker/internal/models"
)

func TestSeedHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	specs := []models.SessionSpec{
		{Name: "A", Location: "Room1", SeatsShift1: 1, SeatsShift2: 0},
		{Name: "B", Location: "Room2", SeatsShift1: 10, SeatsShift2: 5},
	}
	body := `[{"nome":"A","local":"Room1","limite_turno1":1,"limite_turno2":0},
		{"nome":"B","local":"Room2","limite_turno1":10,"limite_turno2":5}]`

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.Seeder)
		expectedStatus int
		expectedText   string
		expectedJSON   string
	}{
		{
			name:        "Success",
			requestBody: body,
			mockSetup: func(m *mocks.Seeder) {
				m.On("Seed", mock.Anything, specs).Return([]int64{1, 2}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedText:   "Oficinas inseridas com sucesso",
		},
		{
			name:        "Empty list",
			requestBody: `[]`,
			mockSetup: func(m *mocks.Seeder) {
				m.On("Seed", mock.Anything, []models.SessionSpec{}).Return([]int64{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedText:   "Oficinas inseridas com sucesso",
		},
		{
			name:           "Invalid JSON",
			requestBody:    `{"nome":"A"}`,
			mockSetup:      func(m *mocks.Seeder) {},
			expectedStatus: http.StatusBadRequest,
			expectedJSON:   `{"sucesso":false,"error":"failed to decode request","kind":"invalid_input"}`,
		},
		{
			name:           "Missing name",
			requestBody:    `[{"local":"Room1","limite_turno1":1}]`,
			mockSetup:      func(m *mocks.Seeder) {},
			expectedStatus: http.StatusBadRequest,
			expectedJSON:   `{"sucesso":false,"error":"field Name is a required field","kind":"invalid_input"}`,
		},
		{
			name:           "Negative seats",
			requestBody:    `[{"nome":"A","limite_turno1":-1}]`,
			mockSetup:      func(m *mocks.Seeder) {},
			expectedStatus: http.StatusBadRequest,
			expectedJSON:   `{"sucesso":false,"error":"field SeatsShift1 must be at least 0","kind":"invalid_input"}`,
		},
		{
			name:        "Storage error",
			requestBody: body,
			mockSetup: func(m *mocks.Seeder) {
				m.On("Seed", mock.Anything, specs).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedJSON:   `{"sucesso":false,"error":"failed to seed sessions","kind":"storage_error"}`,
		},
		{
			name:        "Rejected by service",
			requestBody: body,
			mockSetup: func(m *mocks.Seeder) {
				m.On("Seed", mock.Anything, specs).
					Return(nil, enrollment.NewError(enrollment.KindInvalidInput, "session name is required"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedJSON:   `{"sucesso":false,"error":"session name is required","kind":"invalid_input"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockSeeder := mocks.NewSeeder(t)
			tc.mockSetup(mockSeeder)

			router := chi.NewRouter()
			router.Post("/seed", New(logger, mockSeeder))

			req, err := http.NewRequest(http.MethodPost, "/seed", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedJSON != "" {
				assert.JSONEq(t, tc.expectedJSON, rr.Body.String(), "Response body mismatch")
				return
			}
			assert.Equal(t, tc.expectedText, rr.Body.String())
			assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
		})
	}
}

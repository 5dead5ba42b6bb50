package listEnrollments

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"workshopBooker/internal/http-server/handlers/workshop/listEnrollments/mocks"
	"workshopBooker/internal/lib/logger/handlers/slogdiscard"
	"workshopBooker/internal/models"
)

func TestListEnrollmentsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	details := []models.EnrollmentDetail{
		{
			RegistrantName:  "Alice",
			RegistrantEmail: "alice@x.com",
			SessionName:     "A",
			Location:        "Room1",
			Shift:           models.Shift1,
			ShiftLabel:      models.Shift1.Label(),
		},
		{
			RegistrantName:  "Bob",
			RegistrantEmail: "bob@x.com",
			SessionName:     "B",
			Location:        "Room2",
			Shift:           models.Shift2,
			ShiftLabel:      models.Shift2.Label(),
		},
	}

	testCases := []struct {
		name           string
		details        []models.EnrollmentDetail
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			details:        details,
			expectedStatus: http.StatusOK,
			expectedBody: `[
				{"nome":"Alice","email":"alice@x.com","oficina":"A","local":"Room1","horario":"9:30–11:30"},
				{"nome":"Bob","email":"bob@x.com","oficina":"B","local":"Room2","horario":"11:30–13:30"}
			]`,
		},
		{
			name:           "Empty",
			details:        nil,
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "Storage error",
			err:            errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"sucesso":false,"error":"failed to get enrollments","kind":"storage_error"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewEnrollmentsGetter(t)
			mockGetter.On("List", mock.Anything).Return(tc.details, tc.err)

			handler := New(logger, mockGetter)

			req := httptest.NewRequest(http.MethodGet, "/inscricoes", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}

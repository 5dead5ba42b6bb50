package workshop

import (
	"net/http"

	"workshopBooker/internal/enrollment"
)

// StatusFor maps a service error to the HTTP status it is reported with.
func StatusFor(err error) int {
	switch enrollment.KindOf(err) {
	case enrollment.KindInvalidInput, enrollment.KindAlreadyEnrolled, enrollment.KindCapacityExceeded:
		return http.StatusBadRequest
	case enrollment.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

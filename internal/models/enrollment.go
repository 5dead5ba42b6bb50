package models

type Enrollment struct {
	ID           int64 `json:"id" db:"id"`
	RegistrantID int64 `json:"usuario_id" db:"registrant_id"`
	SessionID    int64 `json:"oficina_id" db:"session_id"`
	Shift        Shift `json:"turno" db:"shift"`
}

// EnrollmentDetail is the joined, read-only view of an enrollment.
type EnrollmentDetail struct {
	RegistrantName  string `json:"nome" db:"registrant_name"`
	RegistrantEmail string `json:"email" db:"registrant_email"`
	SessionName     string `json:"oficina" db:"session_name"`
	Location        string `json:"local" db:"location"`
	ShiftLabel      string `json:"horario" db:"-"`
	Shift           Shift  `json:"-" db:"shift"`
}

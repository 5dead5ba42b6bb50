package models

// Session is a workshop offering. SeatsShift1 and SeatsShift2 hold the
// remaining capacity, CapacityShift1 and CapacityShift2 the seeded one.
type Session struct {
	ID             int64  `json:"id" db:"id"`
	Name           string `json:"nome" db:"name"`
	Location       string `json:"local" db:"location"`
	SeatsShift1    int    `json:"limite_turno1" db:"seats_shift1"`
	SeatsShift2    int    `json:"limite_turno2" db:"seats_shift2"`
	CapacityShift1 int    `json:"-" db:"capacity_shift1"`
	CapacityShift2 int    `json:"-" db:"capacity_shift2"`
}

// Seats returns the remaining capacity for the given shift.
func (s Session) Seats(shift Shift) int {
	if shift == Shift2 {
		return s.SeatsShift2
	}
	return s.SeatsShift1
}

type SessionSpec struct {
	Name        string `json:"nome" validate:"required"`
	Location    string `json:"local"`
	SeatsShift1 int    `json:"limite_turno1" validate:"min=0"`
	SeatsShift2 int    `json:"limite_turno2" validate:"min=0"`
}

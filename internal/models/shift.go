package models

// Shift is one of the two fixed time slots a session runs in.
type Shift string

const (
	Shift1 Shift = "turno1"
	Shift2 Shift = "turno2"
)

var shiftLabels = map[Shift]string{
	Shift1: "9:30–11:30",
	Shift2: "11:30–13:30",
}

func (s Shift) Valid() bool {
	_, ok := shiftLabels[s]
	return ok
}

// Label returns the human-readable time range, or the raw value for an
// unknown shift.
func (s Shift) Label() string {
	if l, ok := shiftLabels[s]; ok {
		return l
	}
	return string(s)
}

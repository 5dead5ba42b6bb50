package models

type Registrant struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"nome" db:"name"`
	Email string `json:"email" db:"email"`
}

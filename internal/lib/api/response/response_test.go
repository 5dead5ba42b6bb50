package response

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string `validate:"required,email"`
	Turno string `validate:"required,oneof=turno1 turno2"`
	Seats int    `validate:"min=0"`
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := validator.New().Struct(sample{Email: "nope", Turno: "turno3", Seats: -1})
	require.Error(t, err)

	var validateErr validator.ValidationErrors
	require.ErrorAs(t, err, &validateErr)

	resp := ValidationError(validateErr)

	assert.False(t, resp.Sucesso)
	assert.Contains(t, resp.Error, "field Email is not a valid email")
	assert.Contains(t, resp.Error, "field Turno must be one of [turno1 turno2]")
	assert.Contains(t, resp.Error, "field Seats must be at least 0")
}

func TestOKAndError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Response{Sucesso: true}, OK())
	assert.Equal(t, Response{Sucesso: true, Mensagem: "feito"}, OKWithMessage("feito"))
	assert.Equal(t, Response{Sucesso: false, Error: "falhou"}, Error("falhou"))
	assert.Equal(t, Response{Sucesso: false, Error: "sem vagas", Kind: "capacity_exceeded"}, ErrorWithKind("sem vagas", "capacity_exceeded"))
}

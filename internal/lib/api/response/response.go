package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	Sucesso  bool   `json:"sucesso"`
	Mensagem string `json:"mensagem,omitempty"`
	Error    string `json:"error,omitempty"`
	// Kind names the failure class of a rejected operation, e.g. "capacity_exceeded".
	Kind string `json:"kind,omitempty"`
}

func OK() Response {
	return Response{
		Sucesso: true,
	}
}

func OKWithMessage(msg string) Response {
	return Response{
		Sucesso:  true,
		Mensagem: msg,
	}
}

func Error(msg string) Response {
	return Response{
		Sucesso: false,
		Error:   msg,
	}
}

func ErrorWithKind(msg, kind string) Response {
	return Response{
		Sucesso: false,
		Error:   msg,
		Kind:    kind,
	}
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not a valid email", err.Field()))
		case "oneof":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must be one of [%s]", err.Field(), err.Param()))
		case "min", "gt":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param()))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}

	return Response{
		Sucesso: false,
		Error:   strings.Join(errMsgs, ", "),
	}
}

package utils

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindState
)

func (k ErrorKind) Status() int {
	switch k {
	case KindValidation, KindState:
		return iris.StatusBadRequest
	case KindConflict:
		return iris.StatusConflict
	case KindAuthentication:
		return iris.StatusUnauthorized
	case KindAuthorization:
		return iris.StatusForbidden
	case KindNotFound:
		return iris.StatusNotFound
	default:
		return iris.StatusInternalServerError
	}
}

// AppError is a domain failure that maps onto one HTTP status.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Code + ": " + e.Message }

func ErrValidation(message string) error {
	return &AppError{Kind: KindValidation, Code: "validation_error", Message: message}
}

func ErrValidationf(format string, args ...interface{}) error {
	return ErrValidation(fmt.Sprintf(format, args...))
}

func ErrConflict(message string) error {
	return &AppError{Kind: KindConflict, Code: "conflict", Message: message}
}

func ErrAuthentication(message string) error {
	return &AppError{Kind: KindAuthentication, Code: "unauthorized", Message: message}
}

func ErrForbidden(message string) error {
	return &AppError{Kind: KindAuthorization, Code: "forbidden", Message: message}
}

func ErrNotFound(message string) error {
	return &AppError{Kind: KindNotFound, Code: "not_found", Message: message}
}

func ErrState(message string) error {
	return &AppError{Kind: KindState, Code: "invalid_state", Message: message}
}

// KindOf classifies err; anything that is not an AppError is internal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// WriteError renders err as {"error", "message"}. Internal errors are logged
// and their detail is never sent to the client.
func WriteError(ctx iris.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		log.Printf("internal error on %s %s: %v", ctx.Method(), ctx.Path(), err)
		CreateInternalServerError(ctx)
		return
	}
	JSONError(ctx, appErr.Kind.Status(), appErr.Code, appErr.Message)
}

func CreateInternalServerError(ctx iris.Context) {
	JSONError(ctx, iris.StatusInternalServerError, "internal_error", "Internal Server Error")
}

// HandleValidationErrors renders a ReadJSON failure. Struct tag failures are
// reported per field, anything else is a malformed body.
func HandleValidationErrors(err error, ctx iris.Context) {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		fields := make([]string, 0, len(errs))
		for _, fe := range errs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		JSONError(ctx, iris.StatusBadRequest, "validation_error", "Invalid fields: "+strings.Join(fields, ", "))
		return
	}
	JSONError(ctx, iris.StatusBadRequest, "validation_error", "Invalid request body")
}

// NewValidator reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

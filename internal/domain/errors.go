package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUsernameTaken      = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidResetCode   = errors.New("código de recuperación inválido o expirado")
	ErrRegistrationClosed = errors.New("el registro de usuarios está deshabilitado")
)

// AuthorizationDeniedError indica que el usuario no puede modificar una sección.
// RequiredRoles se llena cuando decidió el rol; RequiredPermission cuando decidió
// el permiso explícito del usuario.
type AuthorizationDeniedError struct {
	Section            string
	RequiredRoles      []string
	RequiredPermission string
	Reason             string
}

func (e *AuthorizationDeniedError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.RequiredPermission != "" {
		return fmt.Sprintf("acceso denegado a la sección %s: requiere el permiso %s", e.Section, e.RequiredPermission)
	}
	return fmt.Sprintf("acceso denegado a la sección %s: requiere rol %s", e.Section, strings.Join(e.RequiredRoles, " o "))
}

func (e *AuthorizationDeniedError) Unwrap() error { return ErrForbidden }

// InvalidSectionError sección desconocida; error de integración, no del usuario.
type InvalidSectionError struct {
	Section string
}

func (e *InvalidSectionError) Error() string {
	return fmt.Sprintf("sección inválida: %q", e.Section)
}

func (e *InvalidSectionError) Unwrap() error { return ErrInvalidInput }

// InvalidEnumValueError valor fuera del conjunto aceptado para un campo enumerado.
type InvalidEnumValueError struct {
	Field    string
	Value    string
	Accepted []string
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("%s debe ser uno de: %s", e.Field, strings.Join(e.Accepted, ", "))
}

// FieldError un error puntual sobre un campo del formulario.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// ValidationError agrupa todos los errores de campo encontrados (no solo el primero).
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validación fallida: " + strings.Join(msgs, "; ")
}

// Unwrap expone ErrInvalidInput y la causa de cada campo, para errors.Is / errors.As.
func (e *ValidationError) Unwrap() []error {
	errs := []error{ErrInvalidInput}
	for _, f := range e.Fields {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// Add registra un error de campo requerido o de formato.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// AddEnum registra un valor fuera de su enumeración.
func (e *ValidationError) AddEnum(field, value string, accepted []string) {
	err := &InvalidEnumValueError{Field: field, Value: value, Accepted: accepted}
	e.Fields = append(e.Fields, FieldError{Field: field, Message: err.Error(), Err: err})
}

// Has indica si hay un error para el campo dado.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// OrNil devuelve nil si no se acumuló ningún error.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

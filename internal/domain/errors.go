package domain

import "errors"

var (
	ErrNotFound          = errors.New("no encontrado")
	ErrInvalidCredential = errors.New("contraseña incorrecta")
	ErrDuplicateEmail    = errors.New("este correo ya está registrado")
	ErrNoSession         = errors.New("sesión requerida")
	ErrForbidden         = errors.New("acceso restringido")
	ErrEmptyCart         = errors.New("carrito vacío")
	ErrAssistantBusy     = errors.New("el asistente está respondiendo")
)

// ValidationError es un error de formulario; Message se muestra tal cual al usuario.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

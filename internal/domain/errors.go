package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrMissingField = errors.New("campo requerido ausente")
	ErrRender       = errors.New("fallo al renderizar el documento")
)

// ValidationError se produce en la frontera cuando faltan campos de primer nivel
// (nombre/email del cliente o ítems). La generación nunca arranca.
type ValidationError struct {
	Fields []string
}

// Error devuelve el mensaje expuesto al cliente tal cual.
func (e *ValidationError) Error() string {
	return "Missing required fields"
}

// Detail lista los campos ausentes, útil para logs.
func (e *ValidationError) Detail() string {
	return strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// MissingFieldError indica que el compositor no encontró un bloque anidado obligatorio
// (p. ej. serviceWarranty). No se reintenta.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing required field: %s", e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// RenderFailure envuelve cualquier error del motor de renderizado (caída del navegador,
// timeout, markup no soportado). El detalle solo se registra en logs.
type RenderFailure struct {
	Engine string
	Err    error
}

func (e *RenderFailure) Error() string {
	return fmt.Sprintf("render %s: %v", e.Engine, e.Err)
}

// Unwrap permite errors.Is tanto contra ErrRender como contra la causa original
// (context.DeadlineExceeded, etc.).
func (e *RenderFailure) Unwrap() []error { return []error{ErrRender, e.Err} }

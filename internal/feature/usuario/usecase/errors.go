// Package usecase implements the business logic for the usuario feature.
package usecase

import "errors"

var (
	// ErrUsuarioNotFound is returned when a user cannot be found by email or ID.
	ErrUsuarioNotFound = errors.New("usuario not found")

	// ErrEmailAlreadyExists is returned by the repository when the email is already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when the email is unknown or the password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSenhaExcedeLimite is returned before hashing when the password exceeds the hasher's safe limit.
	ErrSenhaExcedeLimite = errors.New("password exceeds safe limit")

	// ErrNenhumaAlteracao is returned when an update carries no field.
	ErrNenhumaAlteracao = errors.New("no change requested")
)

// FieldError reports a rejected value for a single request field.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return "invalid field " + e.Field
}

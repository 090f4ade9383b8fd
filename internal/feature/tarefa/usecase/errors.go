// Package usecase implements the business logic for the tarefa feature.
package usecase

import "errors"

var (
	// ErrTarefaNotFound is returned when the task does not exist or belongs to another user.
	ErrTarefaNotFound = errors.New("tarefa not found")

	// ErrInvalidPrioridade is returned when the priority level is outside the configured range.
	ErrInvalidPrioridade = errors.New("prioridade out of range")

	// ErrInvalidCategoria is returned when the category level is outside the configured range.
	ErrInvalidCategoria = errors.New("categoria out of range")
)

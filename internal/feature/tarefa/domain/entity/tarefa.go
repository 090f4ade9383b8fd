// Package entity defines the domain entities for the tarefa feature.
package entity

import (
	"strings"
	"time"
)

// Tarefa is a task owned by exactly one user.
type Tarefa struct {
	ID uint `json:"id"`

	// IDUsuario is the owner. It is never exposed in responses.
	IDUsuario uint `json:"-"`

	Titulo     string `json:"titulo"`
	Descricao  string `json:"descricao"`
	Prioridade int    `json:"prioridade"`
	Categoria  int    `json:"categoria"`

	// DataCriacao is assigned by the store on insert.
	DataCriacao time.Time `json:"dataCriacao"`

	// DataConclusao stays nil until the task is explicitly completed.
	DataConclusao *time.Time `json:"dataConclusao"`
}

// Dados carries the caller-editable fields used by create and full update.
type Dados struct {
	Titulo     string
	Descricao  string
	Prioridade int
	Categoria  int
}

// Filtro selects tasks whose title OR description contains the given text (case-insensitive).
// An empty clause matches nothing.
type Filtro struct {
	Titulo    string
	Descricao string
}

// Vazio reports whether neither clause can match anything.
func (f Filtro) Vazio() bool {
	return strings.TrimSpace(f.Titulo) == "" && strings.TrimSpace(f.Descricao) == ""
}

// LevelRange is the closed interval accepted for priority and category levels.
type LevelRange struct {
	Min int
	Max int
}

// Contains reports whether v lies within the range.
func (r LevelRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Package entity defines the domain entities for the usuario feature.
package entity

import (
	"time"

	"studyflow_backend/internal/shared/patch"
)

// Usuario represents a registered user.
// Hash is never serialized; the password itself is never stored.
type Usuario struct {
	ID                uint      `json:"id"`
	Nome              string    `json:"nome"`
	Genero            *string   `json:"genero"`
	Email             string    `json:"email"`
	Hash              string    `json:"-"`
	DataDeNascimento  *string   `json:"dataDeNascimento"`
	HorarioDeRegistro time.Time `json:"horarioDeRegistro"`
}

// Perfil は GET /perfil が返すオブジェクトです。Avatar は画像が無い場合 null になります。
type Perfil struct {
	Avatar   *string  `json:"avatar"`
	Registro *Usuario `json:"registro"`
}

// Alteracao is a partial profile update.
// An absent field is left untouched, an explicit null clears the column.
type Alteracao struct {
	Nome             patch.Field[string]
	Genero           patch.Field[string]
	Email            patch.Field[string]
	Senha            patch.Field[string]
	DataDeNascimento patch.Field[string]
}

// Vazia reports whether no field was sent at all.
func (a Alteracao) Vazia() bool {
	return !a.Nome.Set && !a.Genero.Set && !a.Email.Set && !a.Senha.Set && !a.DataDeNascimento.Set
}

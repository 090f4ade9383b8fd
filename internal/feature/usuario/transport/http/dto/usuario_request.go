// Package dto defines data transfer objects for the usuario feature's HTTP transport layer.
package dto

import (
	"studyflow_backend/internal/feature/usuario/domain/entity"
	"studyflow_backend/internal/shared/patch"
)

// AutenticacaoReq is the body of POST /autenticar.
type AutenticacaoReq struct {
	Email string `json:"email" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

// CadastroReq is the body of POST /perfil.
type CadastroReq struct {
	Nome  string `json:"nome" binding:"required,max=255"`
	Email string `json:"email" binding:"required,max=255"`
	Senha string `json:"senha" binding:"required"`
}

// Password exposes the submitted password to middleware.PasswordGuard.
func (r *CadastroReq) Password() (string, bool) {
	return r.Senha, r.Senha != ""
}

// AlteracaoReq is the body of PUT /perfil. Every field is optional and may be null.
type AlteracaoReq struct {
	Nome             patch.Field[string] `json:"nome"`
	Genero           patch.Field[string] `json:"genero"`
	Email            patch.Field[string] `json:"email"`
	Senha            patch.Field[string] `json:"senha"`
	DataDeNascimento patch.Field[string] `json:"dataDeNascimento"`
}

// Password exposes the submitted password to middleware.PasswordGuard.
func (r *AlteracaoReq) Password() (string, bool) {
	return r.Senha.Value, r.Senha.HasValue()
}

// ToAlteracao converts the request into the usecase input.
func (r AlteracaoReq) ToAlteracao() entity.Alteracao {
	return entity.Alteracao{
		Nome:             r.Nome,
		Genero:           r.Genero,
		Email:            r.Email,
		Senha:            r.Senha,
		DataDeNascimento: r.DataDeNascimento,
	}
}

// TokenResp is the objeto of a successful POST /autenticar.
type TokenResp struct {
	Token string `json:"token"`
}

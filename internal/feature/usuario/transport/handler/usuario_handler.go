// Package handler はusuarioフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"studyflow_backend/internal/feature/usuario/domain/entity"
	"studyflow_backend/internal/feature/usuario/transport/http/dto"
	"studyflow_backend/internal/feature/usuario/usecase"
	"studyflow_backend/internal/platform/http/envelope"
	"studyflow_backend/internal/platform/http/middleware"
	jwtmw "studyflow_backend/internal/platform/jwt"
	"studyflow_backend/internal/platform/logger"
)

const (
	MsgAutenticado          = "Usuário autenticado com sucesso."
	MsgCredenciaisInvalidas = "Email ou senha incorretos."
	MsgCadastrado           = "Usuário cadastrado com sucesso."
	MsgCadastroFalhou       = "Não foi possível concluir o cadastro."
	MsgPerfilEncontrado     = "Perfil encontrado."
	MsgNaoEncontrado        = "Usuário não encontrado."
	MsgAlterado             = "Dados alterados com sucesso."
	MsgNenhumaAlteracao     = "Nenhuma alteração válida foi recebida."
	MsgAlteracaoFalhou      = "Não foi possível concluir a alteração."
)

// UsuarioUsecase はユーザー操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UsuarioUsecase interface {
	// Register は新規ユーザーを登録します。
	Register(ctx context.Context, nome, email, senha string) error
	// Login はユーザーを認証し、成功時にJWTトークンを返します。
	Login(ctx context.Context, email, senha string) (string, error)
	// Get は呼び出し元のプロフィールを返します。
	Get(ctx context.Context, id uint) (*entity.Perfil, error)
	// Update は呼び出し元のプロフィールを部分更新します。
	Update(ctx context.Context, id uint, alt entity.Alteracao) error
}

// TokenCookie writes the issued token as a cookie when the cookie transport is enabled.
type TokenCookie interface {
	Write(c *gin.Context, token string)
}

// UsuarioHandler は /autenticar と /perfil のHTTPリクエストを処理します。
type UsuarioHandler struct {
	uc        UsuarioUsecase
	cookie    TokenCookie
	safeLimit int
}

// NewUsuarioHandler はUsuarioHandlerの新しいインスタンスを生成します。
// safeLimit はパスワード上限エラーのメッセージに使われます。
func NewUsuarioHandler(uc UsuarioUsecase, cookie TokenCookie, safeLimit int) *UsuarioHandler {
	return &UsuarioHandler{uc: uc, cookie: cookie, safeLimit: safeLimit}
}

// Autenticar handles POST /autenticar.
// - 認証失敗時は401を返却（メール未登録とパスワード不一致は区別しない）
// - 成功時は objeto.token にトークンを入れて200を返却
func (h *UsuarioHandler) Autenticar(c *gin.Context) {
	req := middleware.Body[dto.AutenticacaoReq](c)
	log := logger.FromContext(c.Request.Context())

	token, err := h.uc.Login(c.Request.Context(), req.Email, req.Senha)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			log.Warn("login failed", "remote_addr", c.ClientIP())
			envelope.Unauthorized(c, MsgCredenciaisInvalidas)
			return
		}
		envelope.InternalError(c, err)
		return
	}

	h.cookie.Write(c, token)
	log.Info("user login successful", "remote_addr", c.ClientIP())
	envelope.OK(c, MsgAutenticado, dto.TokenResp{Token: token})
}

// Cadastrar handles POST /perfil.
// メールアドレスの重複は列挙攻撃を防ぐため汎用の400にまとめます。
func (h *UsuarioHandler) Cadastrar(c *gin.Context) {
	req := middleware.Body[dto.CadastroReq](c)

	err := h.uc.Register(c.Request.Context(), req.Nome, req.Email, req.Senha)
	if errors.Is(err, usecase.ErrEmailAlreadyExists) {
		logger.FromContext(c.Request.Context()).Warn("signup failed", "error", err, "remote_addr", c.ClientIP())
		envelope.BadRequest(c, MsgCadastroFalhou)
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	logger.FromContext(c.Request.Context()).Info("user signup successful", "remote_addr", c.ClientIP())
	envelope.Created(c, MsgCadastrado, nil)
}

// Consultar handles GET /perfil.
func (h *UsuarioHandler) Consultar(c *gin.Context) {
	id, ok := jwtmw.MustUserID(c)
	if !ok {
		return
	}
	perfil, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	envelope.OK(c, MsgPerfilEncontrado, perfil)
}

// Alterar handles PUT /perfil.
func (h *UsuarioHandler) Alterar(c *gin.Context) {
	id, ok := jwtmw.MustUserID(c)
	if !ok {
		return
	}
	req := middleware.Body[dto.AlteracaoReq](c)

	err := h.uc.Update(c.Request.Context(), id, req.ToAlteracao())
	if errors.Is(err, usecase.ErrEmailAlreadyExists) {
		logger.FromContext(c.Request.Context()).Warn("profile update rejected", "error", err, "user_id", id)
		envelope.BadRequest(c, MsgAlteracaoFalhou)
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	envelope.OK(c, MsgAlterado, nil)
}

func (h *UsuarioHandler) respondError(c *gin.Context, err error) {
	var fe *usecase.FieldError
	switch {
	case errors.As(err, &fe):
		envelope.InvalidField(c, fe.Field)
	case errors.Is(err, usecase.ErrSenhaExcedeLimite):
		envelope.BadRequest(c, middleware.PasswordTooLongMessage(h.safeLimit))
	case errors.Is(err, usecase.ErrNenhumaAlteracao):
		envelope.BadRequest(c, MsgNenhumaAlteracao)
	case errors.Is(err, usecase.ErrUsuarioNotFound):
		envelope.NotFound(c, MsgNaoEncontrado)
	default:
		envelope.InternalError(c, err)
	}
}

// Package handler はtarefaフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"studyflow_backend/internal/feature/tarefa/domain/entity"
	"studyflow_backend/internal/feature/tarefa/transport/http/dto"
	"studyflow_backend/internal/feature/tarefa/usecase"
	"studyflow_backend/internal/platform/http/envelope"
	"studyflow_backend/internal/platform/http/middleware"
	jwtmw "studyflow_backend/internal/platform/jwt"
	"studyflow_backend/internal/platform/logger"
)

const (
	MsgListadas      = "Tarefas recuperadas com sucesso."
	MsgEncontrada    = "Tarefa encontrada."
	MsgEncontradas   = "Tarefas encontradas."
	MsgNaoEncontrada = "Tarefa não encontrada."
	MsgCadastrada    = "Tarefa cadastrada com sucesso."
	MsgAlterada      = "Tarefa alterada com sucesso."
	MsgExcluida      = "Tarefa excluída com sucesso!"
	MsgConcluida     = "Tarefa concluída com sucesso."
)

// contextTarefaID は RequireTarefa が検証済みのタスクIDを格納するキーです。
const contextTarefaID = "tarefaID"

// TarefaUsecase はタスク操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type TarefaUsecase interface {
	Create(ctx context.Context, owner uint, d entity.Dados) (*entity.Tarefa, error)
	Get(ctx context.Context, owner, id uint) (*entity.Tarefa, error)
	List(ctx context.Context, owner uint) ([]entity.Tarefa, error)
	ListByFilter(ctx context.Context, owner uint, f entity.Filtro) ([]entity.Tarefa, error)
	Update(ctx context.Context, owner, id uint, d entity.Dados) error
	Delete(ctx context.Context, owner, id uint) error
	Complete(ctx context.Context, owner, id uint) error
	Exists(ctx context.Context, owner, id uint) (bool, error)
}

// TarefaHandler handles the /tarefa and /tarefas routes. Every route runs behind jwtmw.AuthRequired.
type TarefaHandler struct {
	uc TarefaUsecase
}

// NewTarefaHandler creates a new TarefaHandler.
func NewTarefaHandler(uc TarefaUsecase) *TarefaHandler {
	return &TarefaHandler{uc: uc}
}

// RequireTarefa はパスの :id が呼び出し元の所有するタスクであることを確認するミドルウェアです。
// 認証ミドルウェアの後に置く必要があります。存在しない・他人のタスク・不正なIDはいずれも404です。
func (h *TarefaHandler) RequireTarefa() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := jwtmw.MustUserID(c)
		if !ok {
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			envelope.NotFound(c, MsgNaoEncontrada)
			return
		}
		exists, err := h.uc.Exists(c.Request.Context(), owner, uint(id))
		if err != nil {
			envelope.InternalError(c, err)
			return
		}
		if !exists {
			envelope.NotFound(c, MsgNaoEncontrada)
			return
		}
		c.Set(contextTarefaID, uint(id))
		c.Next()
	}
}

func tarefaID(c *gin.Context) uint {
	return c.MustGet(contextTarefaID).(uint)
}

// List handles GET /tarefas.
func (h *TarefaHandler) List(c *gin.Context) {
	owner, ok := jwtmw.MustUserID(c)
	if !ok {
		return
	}
	tarefas, err := h.uc.List(c.Request.Context(), owner)
	if err != nil {
		envelope.InternalError(c, err)
		return
	}
	envelope.OK(c, MsgListadas, tarefas)
}

// Get handles GET /tarefa/:id.
func (h *TarefaHandler) Get(c *gin.Context) {
	owner, ok := jwtmw.MustUserID(c)
	if !ok {
		return
	}
	tarefa, err := h.uc.Get(c.Request.Context(), owner, tarefaID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	envelope.OK(c, MsgEncontrada, tarefa)
}

// Filter handles GET /tarefas/filtro?titulo=&descricao=. An empty result answers 404.
func (h *TarefaHandler) Filter(c *gin.Context) {
	owner, ok := jwtmw.MustUserID(c)
	if !ok {
		return
	}
	var q dto.FiltroQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		envelope.BadRequest(c, "")
		return
	}
	tarefas, err := h.uc.ListByFilter(c.Request.Context(), owner, q.ToFiltro())
	if err != nil {
		envelope.InternalError(c, err)
		return
	}
	if len(tarefas) == 0 {
		envelope.NotFound(c, MsgNaoEncontrada)
		return
	}
	envelope.OK(c, MsgEncontradas, tarefas)
}

// Create handles POST /tarefa. The body is validated by middleware.Validate[dto.TarefaReq].
func (h *TarefaHandler) Create(c *gin.Context) {
	owner, ok := jwtmw.MustUserID(c)
	if !ok {
		return
	}
	dados, ok := toDados(c)
	if !ok {
		return
	}
	tarefa, err := h.uc.Create(c.Request.Context(), owner, dados)
	if err != nil {
		h.respondError(c, err)
		return
	}
	logger.FromContext(c.Request.Context()).Info("tarefa created", "tarefa_id", tarefa.ID, "user_id", owner)
	envelope.Created(c, MsgCadastrada, tarefa)
}

// Update handles PUT /tarefa/:id.
func (h *TarefaHandler) Update(c *gin.Context) {
	owner, ok := jwtmw.MustUserID(c)
	if !ok {
		return
	}
	dados, ok := toDados(c)
	if !ok {
		return
	}
	if err := h.uc.Update(c.Request.Context(), owner, tarefaID(c), dados); err != nil {
		h.respondError(c, err)
		return
	}
	envelope.OK(c, MsgAlterada, nil)
}

// Delete handles DELETE /tarefa/:id.
func (h *TarefaHandler) Delete(c *gin.Context) {
	owner, ok := jwtmw.MustUserID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), owner, tarefaID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	envelope.OK(c, MsgExcluida, nil)
}

// Complete handles PUT /tarefa/:id/concluir.
func (h *TarefaHandler) Complete(c *gin.Context) {
	owner, ok := jwtmw.MustUserID(c)
	if !ok {
		return
	}
	if err := h.uc.Complete(c.Request.Context(), owner, tarefaID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	envelope.OK(c, MsgConcluida, nil)
}

func toDados(c *gin.Context) (entity.Dados, bool) {
	req := middleware.Body[dto.TarefaReq](c)
	dados, err := req.ToDados()
	if err != nil {
		// Validate の integer ルールを通過していれば到達しない
		envelope.BadRequest(c, "")
		return entity.Dados{}, false
	}
	return dados, true
}

func (h *TarefaHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrTarefaNotFound):
		envelope.NotFound(c, MsgNaoEncontrada)
	case errors.Is(err, usecase.ErrInvalidPrioridade):
		envelope.InvalidField(c, "prioridadeNv")
	case errors.Is(err, usecase.ErrInvalidCategoria):
		envelope.InvalidField(c, "categoriaNv")
	default:
		envelope.InternalError(c, err)
	}
}

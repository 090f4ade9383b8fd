// Package dto defines data transfer objects for the tarefa feature's HTTP transport layer.
package dto

import (
	"studyflow_backend/internal/feature/tarefa/domain/entity"
	"studyflow_backend/internal/platform/http/middleware"
)

// TarefaReq is the body of POST /tarefa and PUT /tarefa/:id.
// prioridadeNv and categoriaNv accept numbers or numeric strings; 0 counts as present.
type TarefaReq struct {
	Titulo       string            `json:"titulo" binding:"required,max=255"`
	Descricao    string            `json:"descricao"`
	PrioridadeNv middleware.Number `json:"prioridadeNv" binding:"required,integer"`
	CategoriaNv  middleware.Number `json:"categoriaNv" binding:"required,integer"`
}

// ToDados converts a validated request into the usecase input.
func (r TarefaReq) ToDados() (entity.Dados, error) {
	p, err := r.PrioridadeNv.Int()
	if err != nil {
		return entity.Dados{}, err
	}
	c, err := r.CategoriaNv.Int()
	if err != nil {
		return entity.Dados{}, err
	}
	return entity.Dados{
		Titulo:     r.Titulo,
		Descricao:  r.Descricao,
		Prioridade: p,
		Categoria:  c,
	}, nil
}

// FiltroQuery is the query string of GET /tarefas/filtro.
type FiltroQuery struct {
	Titulo    string `form:"titulo"`
	Descricao string `form:"descricao"`
}

// ToFiltro converts the query into the domain filter.
func (q FiltroQuery) ToFiltro() entity.Filtro {
	return entity.Filtro{Titulo: q.Titulo, Descricao: q.Descricao}
}

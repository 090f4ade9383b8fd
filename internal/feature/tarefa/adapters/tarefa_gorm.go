// Package adapters はtarefaフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"studyflow_backend/internal/feature/tarefa/domain/entity"
	"studyflow_backend/internal/feature/tarefa/usecase"
	"studyflow_backend/internal/shared/ownership"
)

// ownerColumn はタスクの所有者を保持するカラムです。
const ownerColumn = "id_usuario"

// TarefaModel is the gorm row for a task.
type TarefaModel struct {
	ID            uint       `gorm:"primaryKey"`
	IDUsuario     uint       `gorm:"column:id_usuario;not null;index"`
	Titulo        string     `gorm:"size:255;not null"`
	Descricao     string     `gorm:"type:text;not null;default:''"`
	Prioridade    int        `gorm:"not null;default:0"`
	Categoria     int        `gorm:"not null;default:0"`
	DataCriacao   time.Time  `gorm:"column:data_criacao;autoCreateTime"`
	DataConclusao *time.Time `gorm:"column:data_conclusao"`
}

func (TarefaModel) TableName() string {
	return "tarefas"
}

// SetOwner implements ownership.Owned.
func (m *TarefaModel) SetOwner(ownerID uint) {
	m.IDUsuario = ownerID
}

func (m TarefaModel) toEntity() entity.Tarefa {
	return entity.Tarefa{
		ID:            m.ID,
		IDUsuario:     m.IDUsuario,
		Titulo:        m.Titulo,
		Descricao:     m.Descricao,
		Prioridade:    m.Prioridade,
		Categoria:     m.Categoria,
		DataCriacao:   m.DataCriacao,
		DataConclusao: m.DataConclusao,
	}
}

func toEntities(rows []TarefaModel) []entity.Tarefa {
	out := make([]entity.Tarefa, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out
}

// tarefaGorm はTarefaRepositoryのGORM実装です。所有者による絞り込みはownership.Storeに委譲します。
type tarefaGorm struct {
	store *ownership.Store[TarefaModel, *TarefaModel]
}

var _ usecase.TarefaRepository = (*tarefaGorm)(nil)

// NewTarefaRepository creates a task repository on db.
func NewTarefaRepository(db *gorm.DB) *tarefaGorm {
	return &tarefaGorm{store: ownership.NewStore[TarefaModel](db, ownerColumn)}
}

func (r *tarefaGorm) Create(ctx context.Context, owner uint, d entity.Dados) (*entity.Tarefa, error) {
	m := &TarefaModel{
		Titulo:     d.Titulo,
		Descricao:  d.Descricao,
		Prioridade: d.Prioridade,
		Categoria:  d.Categoria,
	}
	if err := r.store.Create(ctx, owner, m); err != nil {
		return nil, err
	}
	e := m.toEntity()
	return &e, nil
}

func (r *tarefaGorm) Get(ctx context.Context, owner, id uint) (*entity.Tarefa, error) {
	m, found, err := r.store.First(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, usecase.ErrTarefaNotFound
	}
	e := m.toEntity()
	return &e, nil
}

func (r *tarefaGorm) List(ctx context.Context, owner uint) ([]entity.Tarefa, error) {
	rows, err := r.store.Find(ctx, owner)
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// ListByFilter は titulo OR descricao の部分一致(大文字小文字を区別しない)で検索します。
// 空の条件は何にも一致しません。
func (r *tarefaGorm) ListByFilter(ctx context.Context, owner uint, f entity.Filtro) ([]entity.Tarefa, error) {
	rows, err := r.store.Find(ctx, owner, filterScope(f))
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *tarefaGorm) Update(ctx context.Context, owner, id uint, d entity.Dados) (bool, error) {
	n, err := r.store.Updates(ctx, owner, id, map[string]any{
		"titulo":     d.Titulo,
		"descricao":  d.Descricao,
		"prioridade": d.Prioridade,
		"categoria":  d.Categoria,
	})
	return n > 0, err
}

func (r *tarefaGorm) Delete(ctx context.Context, owner, id uint) (bool, error) {
	n, err := r.store.Delete(ctx, owner, id)
	return n > 0, err
}

func (r *tarefaGorm) Complete(ctx context.Context, owner, id uint, at time.Time) (bool, error) {
	n, err := r.store.Updates(ctx, owner, id, map[string]any{"data_conclusao": at})
	return n > 0, err
}

func (r *tarefaGorm) Exists(ctx context.Context, owner, id uint) (bool, error) {
	return r.store.Exists(ctx, owner, id)
}

func filterScope(f entity.Filtro) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		var (
			conds []string
			args  []any
		)
		if t := strings.TrimSpace(f.Titulo); t != "" {
			conds = append(conds, "LOWER(titulo) LIKE ? ESCAPE '\\'")
			args = append(args, likePattern(t))
		}
		if d := strings.TrimSpace(f.Descricao); d != "" {
			conds = append(conds, "LOWER(descricao) LIKE ? ESCAPE '\\'")
			args = append(args, likePattern(d))
		}
		if len(conds) == 0 {
			return db.Where("1 = 0")
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// likePattern は LIKE のワイルドカードをエスケープし、前後に%を付けます。
func likePattern(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return "%" + s + "%"
}

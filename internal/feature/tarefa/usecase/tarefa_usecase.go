package usecase

import (
	"context"
	"time"

	"studyflow_backend/internal/feature/tarefa/domain/entity"
)

// TarefaRepository はタスクの永続化層を抽象化します。
// すべての操作は所有者ID(owner)で絞り込まれ、他ユーザーのタスクは存在しないものとして扱われます。
// bool を返す操作は1行以上が影響を受けた場合のみ true を返し、0行はエラーになりません。
type TarefaRepository interface {
	Create(ctx context.Context, owner uint, d entity.Dados) (*entity.Tarefa, error)
	// Get は見つからない場合 ErrTarefaNotFound を返します。
	Get(ctx context.Context, owner, id uint) (*entity.Tarefa, error)
	List(ctx context.Context, owner uint) ([]entity.Tarefa, error)
	ListByFilter(ctx context.Context, owner uint, f entity.Filtro) ([]entity.Tarefa, error)
	Update(ctx context.Context, owner, id uint, d entity.Dados) (bool, error)
	Delete(ctx context.Context, owner, id uint) (bool, error)
	Complete(ctx context.Context, owner, id uint, at time.Time) (bool, error)
	Exists(ctx context.Context, owner, id uint) (bool, error)
}

// TarefaUsecase provides the task operations for an authenticated owner.
type TarefaUsecase struct {
	repo   TarefaRepository
	levels entity.LevelRange
	now    func() time.Time
}

// NewTarefaUsecase creates a TarefaUsecase accepting priority/category values within levels.
func NewTarefaUsecase(repo TarefaRepository, levels entity.LevelRange) *TarefaUsecase {
	return &TarefaUsecase{repo: repo, levels: levels, now: time.Now}
}

func (u *TarefaUsecase) validate(d entity.Dados) error {
	if !u.levels.Contains(d.Prioridade) {
		return ErrInvalidPrioridade
	}
	if !u.levels.Contains(d.Categoria) {
		return ErrInvalidCategoria
	}
	return nil
}

// Create registers a new task for owner.
func (u *TarefaUsecase) Create(ctx context.Context, owner uint, d entity.Dados) (*entity.Tarefa, error) {
	if err := u.validate(d); err != nil {
		return nil, err
	}
	return u.repo.Create(ctx, owner, d)
}

// Get returns one of owner's tasks.
func (u *TarefaUsecase) Get(ctx context.Context, owner, id uint) (*entity.Tarefa, error) {
	return u.repo.Get(ctx, owner, id)
}

// List returns all of owner's tasks (possibly empty).
func (u *TarefaUsecase) List(ctx context.Context, owner uint) ([]entity.Tarefa, error) {
	return u.repo.List(ctx, owner)
}

// ListByFilter returns owner's tasks matching f. When both clauses are empty the
// result is empty and the store is not queried.
func (u *TarefaUsecase) ListByFilter(ctx context.Context, owner uint, f entity.Filtro) ([]entity.Tarefa, error) {
	if f.Vazio() {
		return []entity.Tarefa{}, nil
	}
	return u.repo.ListByFilter(ctx, owner, f)
}

// Update replaces every editable field of owner's task id.
func (u *TarefaUsecase) Update(ctx context.Context, owner, id uint, d entity.Dados) error {
	if err := u.validate(d); err != nil {
		return err
	}
	ok, err := u.repo.Update(ctx, owner, id, d)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTarefaNotFound
	}
	return nil
}

// Delete removes owner's task id.
func (u *TarefaUsecase) Delete(ctx context.Context, owner, id uint) error {
	ok, err := u.repo.Delete(ctx, owner, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTarefaNotFound
	}
	return nil
}

// Complete stamps the completion time of owner's task id with the current time.
func (u *TarefaUsecase) Complete(ctx context.Context, owner, id uint) error {
	ok, err := u.repo.Complete(ctx, owner, id, u.now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrTarefaNotFound
	}
	return nil
}

// Exists reports whether owner has a task id.
func (u *TarefaUsecase) Exists(ctx context.Context, owner, id uint) (bool, error) {
	return u.repo.Exists(ctx, owner, id)
}

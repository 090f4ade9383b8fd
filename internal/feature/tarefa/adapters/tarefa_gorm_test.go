package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"studyflow_backend/internal/feature/tarefa/domain/entity"
	"studyflow_backend/internal/feature/tarefa/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&TarefaModel{}), "failed to migrate table")
	return db
}

func create(t *testing.T, r *tarefaGorm, owner uint, titulo, descricao string) *entity.Tarefa {
	t.Helper()
	tf, err := r.Create(context.Background(), owner, entity.Dados{Titulo: titulo, Descricao: descricao, Prioridade: 2, Categoria: 1})
	require.NoError(t, err)
	return tf
}

func TestNewTarefaRepository(t *testing.T) {
	repo := NewTarefaRepository(setupTestDB(t))

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.store, "store is nil")
}

func TestTarefaGorm_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewTarefaRepository(setupTestDB(t))

	created := create(t, repo, 1, "Estudar Go", "capítulo 3")

	assert.NotZero(t, created.ID)
	assert.Equal(t, uint(1), created.IDUsuario)
	assert.False(t, created.DataCriacao.IsZero(), "creation time must be store-assigned")
	assert.Nil(t, created.DataConclusao)

	got, err := repo.Get(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Estudar Go", got.Titulo)
	assert.Equal(t, "capítulo 3", got.Descricao)
	assert.Equal(t, 2, got.Prioridade)
	assert.Equal(t, 1, got.Categoria)

	_, err = repo.Get(ctx, 1, created.ID+100)
	assert.ErrorIs(t, err, usecase.ErrTarefaNotFound)
}

// TestTarefaGorm_CrossOwnerIsolation はユーザーAのタスクにユーザーBのIDでアクセスしても
// すべての操作が「見つからない」になることを検証します。
func TestTarefaGorm_CrossOwnerIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewTarefaRepository(setupTestDB(t))

	const ownerA, ownerB = uint(1), uint(2)
	task := create(t, repo, ownerA, "Privada", "somente A")

	_, err := repo.Get(ctx, ownerB, task.ID)
	assert.ErrorIs(t, err, usecase.ErrTarefaNotFound, "get")

	ok, err := repo.Update(ctx, ownerB, task.ID, entity.Dados{Titulo: "hack"})
	require.NoError(t, err)
	assert.False(t, ok, "update")

	ok, err = repo.Complete(ctx, ownerB, task.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, ok, "complete")

	ok, err = repo.Delete(ctx, ownerB, task.ID)
	require.NoError(t, err)
	assert.False(t, ok, "delete")

	exists, err := repo.Exists(ctx, ownerB, task.ID)
	require.NoError(t, err)
	assert.False(t, exists, "exists")

	list, err := repo.List(ctx, ownerB)
	require.NoError(t, err)
	assert.Empty(t, list, "list")

	filtered, err := repo.ListByFilter(ctx, ownerB, entity.Filtro{Titulo: "Priv"})
	require.NoError(t, err)
	assert.Empty(t, filtered, "filter")

	// Aのタスクは変更されていない
	got, err := repo.Get(ctx, ownerA, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Privada", got.Titulo)
	assert.Nil(t, got.DataConclusao)
}

func TestTarefaGorm_List(t *testing.T) {
	ctx := context.Background()
	repo := NewTarefaRepository(setupTestDB(t))

	list, err := repo.List(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	first := create(t, repo, 1, "A", "")
	second := create(t, repo, 1, "B", "")
	create(t, repo, 2, "C", "")

	list, err = repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestTarefaGorm_ListByFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewTarefaRepository(setupTestDB(t))

	create(t, repo, 1, "Revisar ABC", "lista de exercícios")
	create(t, repo, 1, "Ler artigo", "tema abcdário")
	create(t, repo, 1, "Correr", "parque")
	create(t, repo, 1, "100% pronto", "nada")
	create(t, repo, 2, "abc de outro usuário", "abc")

	tests := []struct {
		name     string
		filtro   entity.Filtro
		expected []string
	}{
		{"both empty match nothing", entity.Filtro{}, nil},
		{"whitespace counts as empty", entity.Filtro{Titulo: "  ", Descricao: " "}, nil},
		{"title only, case-insensitive", entity.Filtro{Titulo: "abc"}, []string{"Revisar ABC"}},
		{"description only", entity.Filtro{Descricao: "ABC"}, []string{"Ler artigo"}},
		{"title OR description", entity.Filtro{Titulo: "abc", Descricao: "parque"}, []string{"Revisar ABC", "Correr"}},
		{"wildcards are literal", entity.Filtro{Titulo: "%"}, []string{"100% pronto"}},
		{"underscore is literal", entity.Filtro{Titulo: "_"}, nil},
		{"no match", entity.Filtro{Titulo: "xyz"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListByFilter(ctx, 1, tt.filtro)
			require.NoError(t, err)

			titles := make([]string, 0, len(got))
			for _, tf := range got {
				titles = append(titles, tf.Titulo)
			}
			if tt.expected == nil {
				assert.Empty(t, titles)
			} else {
				assert.Equal(t, tt.expected, titles)
			}
		})
	}
}

func TestTarefaGorm_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewTarefaRepository(setupTestDB(t))
	task := create(t, repo, 1, "Antes", "desc")

	ok, err := repo.Update(ctx, 1, task.ID, entity.Dados{Titulo: "Depois", Descricao: "", Prioridade: 0, Categoria: 3})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.Get(ctx, 1, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Depois", got.Titulo)
	assert.Equal(t, "", got.Descricao, "full update clears omitted text")
	assert.Equal(t, 0, got.Prioridade, "zero values are written")
	assert.Equal(t, 3, got.Categoria)
	assert.Equal(t, task.DataCriacao.Unix(), got.DataCriacao.Unix())

	ok, err = repo.Update(ctx, 1, task.ID+1, entity.Dados{Titulo: "x"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTarefaGorm_CompleteAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewTarefaRepository(setupTestDB(t))
	task := create(t, repo, 1, "Concluir", "")

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ok, err := repo.Complete(ctx, 1, task.ID, at)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.Get(ctx, 1, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DataConclusao)
	assert.True(t, at.Equal(*got.DataConclusao))

	ok, err = repo.Delete(ctx, 1, task.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, 1, task.ID)
	require.NoError(t, err)
	assert.False(t, ok, "second delete affects no rows")

	_, err = repo.Get(ctx, 1, task.ID)
	assert.ErrorIs(t, err, usecase.ErrTarefaNotFound)
}

func TestLikePattern(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "%abc%", likePattern("ABC"))
	assert.Equal(t, `%50\%\_off\\%`, likePattern(`50%_off\`))
}

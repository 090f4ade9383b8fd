// Package adapters はusuarioフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studyflow_backend/internal/feature/usuario/domain/entity"
	"studyflow_backend/internal/feature/usuario/usecase"
	"studyflow_backend/internal/platform/db"
)

// UsuarioModel is the persisted form of a user.
type UsuarioModel struct {
	ID                uint      `gorm:"primaryKey"`
	Nome              string    `gorm:"size:255;not null"`
	Genero            *string   `gorm:"size:1"`
	Email             string    `gorm:"uniqueIndex;size:255;not null"`
	Hash              string    `gorm:"size:255;not null"`
	DataDeNascimento  *string   `gorm:"column:data_de_nascimento;size:10"`
	HorarioDeRegistro time.Time `gorm:"column:horario_de_registro;autoCreateTime"`
}

// TableName pins the table name used by the original schema.
func (UsuarioModel) TableName() string {
	return "usuarios"
}

func (m *UsuarioModel) toEntity() *entity.Usuario {
	return &entity.Usuario{
		ID:                m.ID,
		Nome:              m.Nome,
		Genero:            m.Genero,
		Email:             m.Email,
		Hash:              m.Hash,
		DataDeNascimento:  m.DataDeNascimento,
		HorarioDeRegistro: m.HorarioDeRegistro,
	}
}

// usuarioGorm はUsuarioRepositoryインターフェースのGORM実装です。
type usuarioGorm struct {
	db *gorm.DB
}

// usuarioGormがUsuarioRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UsuarioRepository = (*usuarioGorm)(nil)

// NewUsuarioRepository は指定されたgorm.DB接続でusuarioGormの新しいインスタンスを生成します。
func NewUsuarioRepository(db *gorm.DB) *usuarioGorm {
	return &usuarioGorm{db: db}
}

// Create はユーザーを追加し、採番されたIDと登録時刻を u に反映します。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *usuarioGorm) Create(ctx context.Context, u *entity.Usuario) error {
	m := UsuarioModel{
		Nome:             u.Nome,
		Genero:           u.Genero,
		Email:            u.Email,
		Hash:             u.Hash,
		DataDeNascimento: u.DataDeNascimento,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	u.ID = m.ID
	u.HorarioDeRegistro = m.HorarioDeRegistro
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
func (r *usuarioGorm) FindByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	return r.first(ctx, clause.Eq{Column: clause.Column{Name: "email"}, Value: email})
}

// FindByID はIDでユーザーを取得します。
func (r *usuarioGorm) FindByID(ctx context.Context, id uint) (*entity.Usuario, error) {
	return r.first(ctx, clause.Eq{Column: clause.Column{Name: "id"}, Value: id})
}

func (r *usuarioGorm) first(ctx context.Context, cond clause.Eq) (*entity.Usuario, error) {
	var m UsuarioModel
	if err := r.db.WithContext(ctx).Where(cond).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUsuarioNotFound
		}
		return nil, err
	}
	return m.toEntity(), nil
}

// Update は values の列だけを1文のUPDATEで書き換えます。nil は NULL になります。
func (r *usuarioGorm) Update(ctx context.Context, id uint, values map[string]any) (bool, error) {
	if len(values) == 0 {
		return false, nil
	}
	res := r.db.WithContext(ctx).
		Model(&UsuarioModel{}).
		Where(clause.Eq{Column: clause.Column{Name: "id"}, Value: id}).
		Updates(values)
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return false, usecase.ErrEmailAlreadyExists
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"studyflow_backend/internal/feature/usuario/domain/entity"
)

// dummyHash はメールアドレスが存在しない場合でも比較処理を走らせるためのbcryptハッシュです。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UsuarioRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UsuarioRepository interface {
	// Create は新しいユーザーを永続化します。メールアドレスが重複する場合 ErrEmailAlreadyExists を返します。
	Create(ctx context.Context, u *entity.Usuario) error

	// FindByEmail は正規化済みのメールアドレスでユーザーを取得します。存在しない場合 ErrUsuarioNotFound を返します。
	FindByEmail(ctx context.Context, email string) (*entity.Usuario, error)

	// FindByID はIDでユーザーを取得します。存在しない場合 ErrUsuarioNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.Usuario, error)

	// Update は values に含まれる列だけを更新し、行が更新されたかどうかを返します。
	// nil の値は列を NULL にします。
	Update(ctx context.Context, id uint, values map[string]any) (bool, error)
}

// PasswordHasher はパスワードのハッシュ化と検証を行います。
type PasswordHasher interface {
	CanHash(password string) bool
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// TokenGenerator はJWTトークン生成のインターフェースを定義します。
type TokenGenerator interface {
	GenerateToken(userID uint) (string, error)
}

// AvatarLocator はユーザーのプロフィール画像の公開パスを解決します。
type AvatarLocator interface {
	Locate(userID uint) *string
}

// usuarioUsecase はユーザー登録・認証・プロフィール管理を実装します。
type usuarioUsecase struct {
	users    UsuarioRepository
	hasher   PasswordHasher
	tokens   TokenGenerator
	avatars  AvatarLocator
	validate *validator.Validate
}

// NewUsuarioUsecase はusuarioUsecaseの新しいインスタンスを生成します。
func NewUsuarioUsecase(users UsuarioRepository, hasher PasswordHasher, tokens TokenGenerator, avatars AvatarLocator) *usuarioUsecase {
	return &usuarioUsecase{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		avatars:  avatars,
		validate: validator.New(),
	}
}

// Register はパスワードをハッシュ化して新規ユーザーを登録します。
// 重複したメールアドレスは ErrEmailAlreadyExists になります。
func (u *usuarioUsecase) Register(ctx context.Context, nome, email, senha string) error {
	nome, err := u.normalizeNome(nome)
	if err != nil {
		return err
	}
	email, err = u.normalizeEmail(email)
	if err != nil {
		return err
	}
	digest, err := u.hashSenha(senha)
	if err != nil {
		return err
	}
	return u.users.Create(ctx, &entity.Usuario{Nome: nome, Email: email, Hash: digest})
}

// Authenticate はメールアドレスとパスワードを検証し、一致したユーザーのIDを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもハッシュ比較を実行します。
func (u *usuarioUsecase) Authenticate(ctx context.Context, email, senha string) (uint, error) {
	user, err := u.users.FindByEmail(ctx, entity.NormalizarEmail(email))
	if err != nil && !errors.Is(err, ErrUsuarioNotFound) {
		return 0, err
	}

	digest := dummyHash
	if user != nil {
		digest = user.Hash
	}
	ok := u.hasher.Verify(senha, digest)

	if user == nil || !ok {
		return 0, ErrInvalidCredentials
	}
	return user.ID, nil
}

// Login は認証に成功した場合、署名済みJWTトークンを返します。
func (u *usuarioUsecase) Login(ctx context.Context, email, senha string) (string, error) {
	id, err := u.Authenticate(ctx, email, senha)
	if err != nil {
		return "", err
	}
	token, err := u.tokens.GenerateToken(id)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Get returns the caller's profile: the stored record without the hash plus the avatar path.
func (u *usuarioUsecase) Get(ctx context.Context, id uint) (*entity.Perfil, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.Perfil{Avatar: u.avatars.Locate(id), Registro: user}, nil
}

// Update applies a partial change to the caller's record.
// nome, email and senha cannot be cleared; genero and dataDeNascimento can.
func (u *usuarioUsecase) Update(ctx context.Context, id uint, alt entity.Alteracao) error {
	if alt.Vazia() {
		return ErrNenhumaAlteracao
	}

	values := make(map[string]any)

	if alt.Nome.Set {
		if alt.Nome.Null {
			return &FieldError{Field: "nome"}
		}
		nome, err := u.normalizeNome(alt.Nome.Value)
		if err != nil {
			return err
		}
		values["nome"] = nome
	}

	if alt.Genero.Set {
		if alt.Genero.Null {
			values["genero"] = nil
		} else {
			genero := entity.NormalizarGenero(alt.Genero.Value)
			if genero == "" {
				return &FieldError{Field: "genero"}
			}
			values["genero"] = genero
		}
	}

	if alt.Email.Set {
		if alt.Email.Null {
			return &FieldError{Field: "email"}
		}
		email, err := u.normalizeEmail(alt.Email.Value)
		if err != nil {
			return err
		}
		values["email"] = email
	}

	if alt.DataDeNascimento.Set {
		if alt.DataDeNascimento.Null {
			values["data_de_nascimento"] = nil
		} else {
			data, ok := entity.NormalizarData(alt.DataDeNascimento.Value)
			if !ok {
				return &FieldError{Field: "dataDeNascimento"}
			}
			values["data_de_nascimento"] = data
		}
	}

	// パスワードは他の項目の検証が済んでからハッシュ化する
	if alt.Senha.Set {
		if alt.Senha.Null {
			return &FieldError{Field: "senha"}
		}
		digest, err := u.hashSenha(alt.Senha.Value)
		if err != nil {
			return err
		}
		values["hash"] = digest
	}

	ok, err := u.users.Update(ctx, id, values)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUsuarioNotFound
	}
	return nil
}

// maxTexto は nome / email 列の文字数上限です。
const maxTexto = "max=255"

func (u *usuarioUsecase) normalizeNome(nome string) (string, error) {
	nome = entity.NormalizarNome(nome)
	if err := u.validate.Var(nome, "required,"+maxTexto); err != nil {
		return "", &FieldError{Field: "nome"}
	}
	return nome, nil
}

func (u *usuarioUsecase) normalizeEmail(email string) (string, error) {
	email = entity.NormalizarEmail(email)
	if err := u.validate.Var(email, "required,email,"+maxTexto); err != nil {
		return "", &FieldError{Field: "email"}
	}
	return email, nil
}

// hashSenha は canHash を確認してからハッシュ化します。
func (u *usuarioUsecase) hashSenha(senha string) (string, error) {
	if senha == "" {
		return "", &FieldError{Field: "senha"}
	}
	if !u.hasher.CanHash(senha) {
		return "", ErrSenhaExcedeLimite
	}
	digest, err := u.hasher.Hash(senha)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return digest, nil
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"studyflow_backend/internal/feature/usuario/domain/entity"
	"studyflow_backend/internal/feature/usuario/transport/http/dto"
	"studyflow_backend/internal/feature/usuario/usecase"
	"studyflow_backend/internal/platform/hasher"
	"studyflow_backend/internal/platform/http/envelope"
	"studyflow_backend/internal/platform/http/middleware"
	jwtmw "studyflow_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockUsuarioUsecase is a mock implementation of the UsuarioUsecase interface.
type mockUsuarioUsecase struct {
	RegisterFunc func(ctx context.Context, nome, email, senha string) error
	LoginFunc    func(ctx context.Context, email, senha string) (string, error)
	GetFunc      func(ctx context.Context, id uint) (*entity.Perfil, error)
	UpdateFunc   func(ctx context.Context, id uint, alt entity.Alteracao) error
}

func (m *mockUsuarioUsecase) Register(ctx context.Context, nome, email, senha string) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, nome, email, senha)
	}
	return nil
}

func (m *mockUsuarioUsecase) Login(ctx context.Context, email, senha string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, senha)
	}
	return "mock-jwt-token", nil
}

func (m *mockUsuarioUsecase) Get(ctx context.Context, id uint) (*entity.Perfil, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &entity.Perfil{Registro: &entity.Usuario{ID: id}}, nil
}

func (m *mockUsuarioUsecase) Update(ctx context.Context, id uint, alt entity.Alteracao) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, alt)
	}
	return nil
}

func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, id)
		c.Next()
	}
}

func setupRouter(uc UsuarioUsecase, cookie jwtmw.CookieWriter) *gin.Engine {
	h := NewUsuarioHandler(uc, cookie, hasher.DefaultSafeLimit)
	guard := hasher.NewBcryptHasher(bcrypt.MinCost, hasher.DefaultSafeLimit)

	r := gin.New()
	r.POST("/autenticar", middleware.Validate[dto.AutenticacaoReq](), h.Autenticar)
	r.POST("/perfil", middleware.Validate[dto.CadastroReq](), middleware.PasswordGuard[dto.CadastroReq](guard), h.Cadastrar)
	r.GET("/perfil", asUser(3), h.Consultar)
	r.PUT("/perfil", asUser(3), middleware.Validate[dto.AlteracaoReq](), middleware.PasswordGuard[dto.AlteracaoReq](guard), h.Alterar)
	return r
}

func do(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope.Response) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp envelope.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestUsuarioHandler_Autenticar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		loginFunc      func(ctx context.Context, email, senha string) (string, error)
		expectedStatus int
		expectedMsg    string
		expectToken    bool
	}{
		{
			name:           "success",
			body:           `{"email":"ana@x.com","senha":"abc123"}`,
			expectedStatus: http.StatusOK,
			expectedMsg:    MsgAutenticado,
			expectToken:    true,
		},
		{
			name:           "missing email",
			body:           `{"senha":"abc123"}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    envelope.MissingFieldMessage("email"),
		},
		{
			name:           "missing password",
			body:           `{"email":"ana@x.com","senha":""}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    envelope.MissingFieldMessage("senha"),
		},
		{
			name:           "malformed json",
			body:           `{"email":`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    envelope.MsgInvalidJSON,
		},
		{
			name: "wrong credentials",
			body: `{"email":"ana@x.com","senha":"nope"}`,
			loginFunc: func(ctx context.Context, email, senha string) (string, error) {
				return "", usecase.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    MsgCredenciaisInvalidas,
		},
		{
			name: "store failure",
			body: `{"email":"ana@x.com","senha":"abc123"}`,
			loginFunc: func(ctx context.Context, email, senha string) (string, error) {
				return "", errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    envelope.DefaultMessage(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := setupRouter(&mockUsuarioUsecase{LoginFunc: tt.loginFunc}, jwtmw.CookieWriter{})
			w, resp := do(r, http.MethodPost, "/autenticar", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, resp.Mensagem)
			if tt.expectToken {
				obj, ok := resp.Objeto.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "mock-jwt-token", obj["token"])
			} else {
				assert.Nil(t, resp.Objeto)
			}
			assert.Empty(t, w.Header().Get("Set-Cookie"))
		})
	}
}

func TestUsuarioHandler_Autenticar_SetsCookie(t *testing.T) {
	t.Parallel()

	cookie := jwtmw.CookieWriter{Name: "auth", MaxAge: time.Hour, Enabled: true}
	w, _ := do(setupRouter(&mockUsuarioUsecase{}, cookie), http.MethodPost, "/autenticar", `{"email":"a@x.com","senha":"abc"}`)

	require.Equal(t, http.StatusOK, w.Code)
	set := w.Header().Get("Set-Cookie")
	assert.Contains(t, set, "auth=mock-jwt-token")
	assert.Contains(t, set, "HttpOnly")
	assert.Contains(t, set, "Max-Age=3600")
}

func TestUsuarioHandler_Cadastrar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		registerFunc   func(ctx context.Context, nome, email, senha string) error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "success",
			body: `{"nome":"Ana","email":"ana@x.com","senha":"abc123"}`,
			registerFunc: func(ctx context.Context, nome, email, senha string) error {
				if nome != "Ana" || email != "ana@x.com" || senha != "abc123" {
					return errors.New("unexpected input")
				}
				return nil
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    MsgCadastrado,
		},
		{
			name:           "missing name",
			body:           `{"email":"ana@x.com","senha":"abc123"}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    envelope.MissingFieldMessage("nome"),
		},
		{
			name: "name longer than the column never reaches the usecase",
			body: `{"nome":"` + strings.Repeat("n", 256) + `","email":"ana@x.com","senha":"abc123"}`,
			registerFunc: func(ctx context.Context, nome, email, senha string) error {
				return errors.New("must not be called")
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    envelope.InvalidFieldMessage("nome"),
		},
		{
			name: "password over the safe limit never reaches the usecase",
			body: `{"nome":"Ana","email":"ana@x.com","senha":"` + strings.Repeat("s", 32) + `"}`,
			registerFunc: func(ctx context.Context, nome, email, senha string) error {
				return errors.New("must not be called")
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Senha informada excedeu o limite de 32 caracteres.",
		},
		{
			name: "duplicate email is reported generically",
			body: `{"nome":"Ana","email":"ana@x.com","senha":"abc123"}`,
			registerFunc: func(ctx context.Context, nome, email, senha string) error {
				return usecase.ErrEmailAlreadyExists
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    MsgCadastroFalhou,
		},
		{
			name: "invalid email",
			body: `{"nome":"Ana","email":"ana","senha":"abc123"}`,
			registerFunc: func(ctx context.Context, nome, email, senha string) error {
				return &usecase.FieldError{Field: "email"}
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    envelope.InvalidFieldMessage("email"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := setupRouter(&mockUsuarioUsecase{RegisterFunc: tt.registerFunc}, jwtmw.CookieWriter{})
			w, resp := do(r, http.MethodPost, "/perfil", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, resp.Mensagem)
		})
	}
}

func TestUsuarioHandler_Consultar(t *testing.T) {
	t.Parallel()

	avatar := "/perfil/imagens/3.png"
	uc := &mockUsuarioUsecase{
		GetFunc: func(ctx context.Context, id uint) (*entity.Perfil, error) {
			if id != 3 {
				return nil, usecase.ErrUsuarioNotFound
			}
			return &entity.Perfil{
				Avatar:   &avatar,
				Registro: &entity.Usuario{ID: 3, Nome: "Ana", Email: "ana@x.com", Hash: "secret-hash"},
			}, nil
		},
	}
	w, resp := do(setupRouter(uc, jwtmw.CookieWriter{}), http.MethodGet, "/perfil", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, MsgPerfilEncontrado, resp.Mensagem)
	assert.NotContains(t, w.Body.String(), "secret-hash")

	obj := resp.Objeto.(map[string]any)
	assert.Equal(t, avatar, obj["avatar"])
	registro := obj["registro"].(map[string]any)
	assert.Equal(t, "ana@x.com", registro["email"])
	assert.Contains(t, registro, "genero")
}

func TestUsuarioHandler_Alterar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		updateFunc     func(ctx context.Context, id uint, alt entity.Alteracao) error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "absent and null are distinguished",
			body: `{"nome":"X","genero":null}`,
			updateFunc: func(ctx context.Context, id uint, alt entity.Alteracao) error {
				if id != 3 || alt.Nome.Value != "X" || !alt.Genero.Null || alt.Email.Set || alt.Senha.Set {
					return errors.New("unexpected patch")
				}
				return nil
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    MsgAlterado,
		},
		{
			name: "empty body",
			body: "",
			updateFunc: func(ctx context.Context, id uint, alt entity.Alteracao) error {
				if !alt.Vazia() {
					return errors.New("expected empty patch")
				}
				return usecase.ErrNenhumaAlteracao
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    MsgNenhumaAlteracao,
		},
		{
			name:           "password over the safe limit",
			body:           `{"senha":"` + strings.Repeat("s", 33) + `"}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Senha informada excedeu o limite de 32 caracteres.",
		},
		{
			name: "null name",
			body: `{"nome":null}`,
			updateFunc: func(ctx context.Context, id uint, alt entity.Alteracao) error {
				return &usecase.FieldError{Field: "nome"}
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    envelope.InvalidFieldMessage("nome"),
		},
		{
			name: "email taken",
			body: `{"email":"b@x.com"}`,
			updateFunc: func(ctx context.Context, id uint, alt entity.Alteracao) error {
				return usecase.ErrEmailAlreadyExists
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    MsgAlteracaoFalhou,
		},
		{
			name: "store failure",
			body: `{"nome":"X"}`,
			updateFunc: func(ctx context.Context, id uint, alt entity.Alteracao) error {
				return errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    envelope.DefaultMessage(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := setupRouter(&mockUsuarioUsecase{UpdateFunc: tt.updateFunc}, jwtmw.CookieWriter{})
			w, resp := do(r, http.MethodPut, "/perfil", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, resp.Mensagem)
		})
	}
}

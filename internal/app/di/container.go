// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	tarefaadapters "studyflow_backend/internal/feature/tarefa/adapters"
	"studyflow_backend/internal/feature/tarefa/domain/entity"
	tarefahandler "studyflow_backend/internal/feature/tarefa/transport/handler"
	tarefausecase "studyflow_backend/internal/feature/tarefa/usecase"
	usuarioadapters "studyflow_backend/internal/feature/usuario/adapters"
	usuariohandler "studyflow_backend/internal/feature/usuario/transport/handler"
	usuariousecase "studyflow_backend/internal/feature/usuario/usecase"
	"studyflow_backend/internal/platform/avatar"
	"studyflow_backend/internal/platform/cache"
	"studyflow_backend/internal/platform/config"
	"studyflow_backend/internal/platform/db"
	"studyflow_backend/internal/platform/hasher"
	platformhandler "studyflow_backend/internal/platform/http/handler"
	jwtmw "studyflow_backend/internal/platform/jwt"
)

// Models lists every persisted model, in migration order.
func Models() []any {
	return []any{&usuarioadapters.UsuarioModel{}, &tarefaadapters.TarefaModel{}}
}

// Components holds the handlers and shared services the router needs.
type Components struct {
	Usuario  *usuariohandler.UsuarioHandler
	Tarefa   *tarefahandler.TarefaHandler
	Health   *platformhandler.HealthHandler
	Verifier *jwtmw.Verifier
	Hasher   *hasher.BcryptHasher
}

// NewTarefaRepository creates a TarefaRepository implementation.
// If Redis is available, the GORM repository is wrapped with the Redis cache.
func NewTarefaRepository(rdb *redis.Client, gdb *gorm.DB, cfg config.Config) tarefausecase.TarefaRepository {
	repo := tarefaadapters.NewTarefaRepository(gdb)
	if rdb != nil {
		return cache.NewCachingTarefaRepository(rdb, cfg.CacheTTL, repo, "tarefas")
	}
	return repo
}

// Build wires repositories, usecases and handlers. rdb may be nil.
func Build(cfg config.Config, gdb *gorm.DB, rdb *redis.Client) Components {
	bcrypt := hasher.NewBcryptHasher(cfg.BcryptCost, cfg.PasswordSafeLimit)
	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.TokenTTL)
	verifier := jwtmw.NewVerifier(cfg.JWTSecret, jwtmw.NewTokenSource(cfg))
	cookie := jwtmw.CookieWriter{
		Name:    cfg.TokenCookieName,
		MaxAge:  cfg.TokenTTL,
		Secure:  cfg.Env != "dev",
		Enabled: cfg.TokenTransport == config.TransportCookie,
	}

	// Repository
	usuarioRepo := usuarioadapters.NewUsuarioRepository(gdb)
	tarefaRepo := NewTarefaRepository(rdb, gdb, cfg)

	// Usecase
	usuarioUC := usuariousecase.NewUsuarioUsecase(usuarioRepo, bcrypt, tokens, avatar.NewFileLocator(cfg.AvatarDir, cfg.AvatarExt))
	tarefaUC := tarefausecase.NewTarefaUsecase(tarefaRepo, entity.LevelRange{Min: cfg.LevelMin, Max: cfg.LevelMax})

	// Handler
	return Components{
		Usuario:  usuariohandler.NewUsuarioHandler(usuarioUC, cookie, bcrypt.SafeLimit()),
		Tarefa:   tarefahandler.NewTarefaHandler(tarefaUC),
		Health:   platformhandler.NewHealthHandler(db.NewPinger(gdb)),
		Verifier: verifier,
		Hasher:   bcrypt,
	}
}

package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"studyflow_backend/internal/app/di"
	tarefadto "studyflow_backend/internal/feature/tarefa/transport/http/dto"
	usuariodto "studyflow_backend/internal/feature/usuario/transport/http/dto"
	"studyflow_backend/internal/platform/avatar"
	"studyflow_backend/internal/platform/config"
	"studyflow_backend/internal/platform/http/envelope"
	"studyflow_backend/internal/platform/http/middleware"
	jwtmw "studyflow_backend/internal/platform/jwt"
	"studyflow_backend/internal/platform/logger"
)

// MsgRotaNaoEncontrada は未定義ルートの404メッセージです。
const MsgRotaNaoEncontrada = "Rota não encontrada."

// NewRouter builds the gin engine. ctx bounds the rate limiter's cleanup goroutine.
func NewRouter(ctx context.Context, cfg config.Config, c di.Components) *gin.Engine {
	r := gin.New()
	r.Use(logger.Middleware(slog.Default()), middleware.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodHead, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.NoRoute(func(gc *gin.Context) {
		envelope.NotFound(gc, MsgRotaNaoEncontrada)
	})

	// 導通確認用
	r.GET("/healthz", c.Health.Health)
	r.HEAD("/healthz", c.Health.Health)
	r.OPTIONS("/healthz", c.Health.Health)

	// プロフィール画像
	if cfg.AvatarDir != "" {
		r.Static(avatar.PublicPrefix, cfg.AvatarDir)
	}

	// 認証不要
	limiter := middleware.NewRateLimiter(ctx, cfg.RateLimitAuthRPS, cfg.RateLimitAuthBurst)
	r.POST("/autenticar",
		limiter.Middleware(),
		middleware.Validate[usuariodto.AutenticacaoReq](),
		c.Usuario.Autenticar)
	r.POST("/perfil",
		limiter.Middleware(),
		middleware.Validate[usuariodto.CadastroReq](),
		middleware.PasswordGuard[usuariodto.CadastroReq](c.Hasher),
		c.Usuario.Cadastrar)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(c.Verifier))
	{
		auth.GET("/perfil", c.Usuario.Consultar)
		auth.PUT("/perfil",
			middleware.Validate[usuariodto.AlteracaoReq](),
			middleware.PasswordGuard[usuariodto.AlteracaoReq](c.Hasher),
			c.Usuario.Alterar)

		auth.GET("/tarefas", c.Tarefa.List)
		auth.GET("/tarefas/filtro", c.Tarefa.Filter)
		auth.POST("/tarefa", middleware.Validate[tarefadto.TarefaReq](), c.Tarefa.Create)

		// 存在確認はボディ検証より先に行う
		tarefa := auth.Group("/tarefa/:id", c.Tarefa.RequireTarefa())
		{
			tarefa.GET("", c.Tarefa.Get)
			tarefa.PUT("", middleware.Validate[tarefadto.TarefaReq](), c.Tarefa.Update)
			tarefa.DELETE("", c.Tarefa.Delete)
			tarefa.PUT("/concluir", c.Tarefa.Complete)
		}
	}

	return r
}

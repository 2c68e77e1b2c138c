// Package app wires the service together: token service, hasher, auth
// service, handlers, and HTTP server, all built from one immutable config.
package app

import (
	"context"

	"github.com/skillsenselab/identity-service/internal/auth"
	"github.com/skillsenselab/identity-service/internal/auth/password"
	"github.com/skillsenselab/identity-service/internal/auth/token"
	"github.com/skillsenselab/identity-service/internal/config"
	"github.com/skillsenselab/identity-service/internal/logger"
	"github.com/skillsenselab/identity-service/internal/server"
	"github.com/skillsenselab/identity-service/internal/server/endpoint"
	"github.com/skillsenselab/identity-service/internal/server/middleware"
	"github.com/skillsenselab/identity-service/internal/user"
)

// App holds the assembled service.
type App struct {
	Server *server.Server
	Auth   *auth.Service
	Tokens *token.Service
	Hasher password.Hasher
}

// New builds the application over the given credential store. The store is
// the only injected collaborator; everything else derives from config.
func New(cfg *config.AppConfig, log *logger.Logger, store user.Store, health endpoint.HealthChecker) (*App, error) {
	tokens, err := token.NewService(&cfg.Token)
	if err != nil {
		return nil, err
	}
	hasher := password.NewHasher(cfg.Password)

	authSvc := auth.New(store, hasher, tokens, log)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()

	engine := srv.Engine()
	engine.GET("/health", endpoint.Health(config.ServiceName, health))
	engine.GET("/info", endpoint.Info(config.ServiceName))

	auth.NewHandler(authSvc).Mount(engine)

	guarded := engine.Group("/", middleware.Auth(tokens))
	user.NewHandler(store, hasher).Mount(guarded)

	return &App{
		Server: srv,
		Auth:   authSvc,
		Tokens: tokens,
		Hasher: hasher,
	}, nil
}

// Run starts the server and blocks until the context is cancelled, then
// shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.Server.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return a.Server.Stop(context.Background())
}

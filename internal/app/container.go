package app

import (
	"fmt"
	"net/http"

	"github.com/sumonst21/opencollective-images/internal/config"
	"github.com/sumonst21/opencollective-images/internal/render"
	"github.com/sumonst21/opencollective-images/internal/server"
	"github.com/sumonst21/opencollective-images/internal/service"
	"github.com/sumonst21/opencollective-images/internal/service/cache"
	"github.com/sumonst21/opencollective-images/internal/service/graphql"
	"go.uber.org/zap"
)

// Container bundles assembled services for constructing the HTTP server.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Resolver *service.Resolver
	Redirect *service.Redirect

	handler *server.Handler
	cache   *cache.Service
}

// NewServer instantiates the HTTP server using the pre-built dependency
// graph.
func (c *Container) NewServer() (*http.Server, error) {
	if c == nil || c.handler == nil {
		return nil, fmt.Errorf("handler not initialized")
	}
	return server.New(c.Config.Server.Port, c.handler), nil
}

// Close releases infrastructure connections.
func (c *Container) Close() error {
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}

// Build assembles all infrastructure services. Heavy-weight initialization
// (the Redis connection) happens here so main stays focused on lifecycle.
func Build(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	cacheSvc, err := cache.NewService(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache service: %w", err)
	}

	gqlClient := graphql.NewClient(cfg.API.GraphqlURL(), logger)
	fetcher := service.NewFetcher(gqlClient, logger)
	resolver := service.NewResolver(fetcher, cacheSvc, logger)
	redirect := service.NewRedirect(resolver, cfg.Site.WebsiteURL)
	renderer := render.NewSVG(cfg.Site.WebsiteURL, logger)

	handler := server.NewHandler(resolver, redirect, renderer, cfg.Site, logger)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Resolver: resolver,
		Redirect: redirect,
		handler:  handler,
		cache:    cacheSvc,
	}, nil
}

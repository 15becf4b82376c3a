package main

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/longevity/internal/config"
	"github.com/JaimeStill/longevity/internal/infrastructure"
	"github.com/JaimeStill/longevity/pkg/middleware"
)

const verifierTimeout = 15 * time.Second

type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	verifier, err := newVerifier(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg, verifier)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra, cfg)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"auth", cfg.Auth.Enabled,
		"rate_limit", cfg.API.RateLimit.Enabled,
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

// newVerifier returns nil when auth is disabled.
func newVerifier(cfg *config.Config) (middleware.TokenVerifier, error) {
	if !cfg.Auth.Enabled {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), verifierTimeout)
	defer cancel()

	v, err := middleware.NewVerifier(ctx, &cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	return v, nil
}

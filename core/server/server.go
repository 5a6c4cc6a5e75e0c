/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hospadmin Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package server serves the console's screens over HTTP: server-rendered
// grid and tree pages, and a JSON API over the record store.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hospadmin/console/core/rendering"
	"github.com/hospadmin/console/core/screens"
	"github.com/hospadmin/console/datasources"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// Server represents the application server with all its dependencies
type Server struct {
	echo     *echo.Echo
	store    datasources.Store
	screens  *screens.Registry
	renderer *rendering.Renderer
	logger   zerolog.Logger

	title    string
	subtitle string
}

// Option configures a Server.
type Option func(*Server)

// WithTitle sets the landing page title and subtitle.
func WithTitle(title, subtitle string) Option {
	return func(s *Server) {
		s.title = title
		s.subtitle = subtitle
	}
}

// New creates a server over store showing the screens of registry.
func New(store datasources.Store, registry *screens.Registry, logger zerolog.Logger, opts ...Option) (*Server, error) {
	renderer, err := rendering.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	s := &Server{
		echo:     echo.New(),
		store:    store,
		screens:  registry,
		renderer: renderer,
		logger:   logger,
		title:    "Hospital Admin Console",
		subtitle: "Rooms, beds, visits and staff",
	}
	for _, opt := range opts {
		opt(s)
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(RequestID())
	e.Use(Logger(logger))
	e.Use(Recovery(logger))

	e.GET("/", s.handleLanding)
	e.GET("/healthz", s.handleHealth)
	e.GET("/screens/:name", s.handleGrid)
	e.GET("/screens/:name/tree", s.handleTree)
	e.POST("/screens/:name/rows/:id/active", s.handleRowActive)

	api := e.Group("/api")
	api.GET("/:entity", s.handleList)
	api.GET("/:entity/:id", s.handleGet)
	api.PUT("/:entity/:id/active", s.handleSetActive)

	return s, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("starting server")
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info().Msg("server stopped")
	return nil
}

func (s *Server) handleHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if p, ok := s.store.(datasources.Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"status": "healthy"})
}

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

package server

import (
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/hospadmin/console/datasources"
	"github.com/labstack/echo/v4"
)

// Envelope is the body of every API response. Data holds a single record
// or a list of records.
type Envelope struct {
	Success      bool   `json:"success"`
	Data         any    `json:"data,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// activeRequest is the body of an active status toggle.
type activeRequest struct {
	Active *bool `json:"active"`
}

func (s *Server) entity(c echo.Context) (string, error) {
	entity := c.Param("entity")
	if !slices.Contains(s.screens.Entities(), entity) {
		return "", echo.NewHTTPError(http.StatusNotFound, "unknown entity "+entity)
	}
	return entity, nil
}

func recordID(c echo.Context) string {
	id := c.Param("id")
	if unescaped, err := url.PathUnescape(id); err == nil {
		return unescaped
	}
	return id
}

func (s *Server) handleList(c echo.Context) error {
	entity, err := s.entity(c)
	if err != nil {
		return err
	}
	records, err := s.store.List(c.Request().Context(), entity)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: records})
}

func (s *Server) handleGet(c echo.Context) error {
	entity, err := s.entity(c)
	if err != nil {
		return err
	}
	record, err := s.store.Get(c.Request().Context(), entity, recordID(c))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: record})
}

func (s *Server) handleSetActive(c echo.Context) error {
	entity, err := s.entity(c)
	if err != nil {
		return err
	}
	var req activeRequest
	if err := c.Bind(&req); err != nil || req.Active == nil {
		return echo.NewHTTPError(http.StatusBadRequest, `body must be {"active": true|false}`)
	}
	record, err := s.store.SetActive(c.Request().Context(), entity, recordID(c), *req.Active)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: record})
}

// storeError maps a store failure to an HTTP error.
func storeError(err error) error {
	if errors.Is(err, datasources.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "record not found").SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "data store unavailable").SetInternal(err)
}

// handleError writes API errors as envelopes and leaves the rest to echo.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if !strings.HasPrefix(c.Request().URL.Path, "/api/") {
		s.echo.DefaultHTTPErrorHandler(err, c)
		return
	}

	code, message := http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}
	if werr := c.JSON(code, Envelope{Success: false, ErrorMessage: message}); werr != nil {
		s.logger.Error().Err(werr).Msg("writing error response")
	}
}

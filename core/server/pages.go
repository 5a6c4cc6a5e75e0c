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
	"bytes"
	"net/http"
	"net/url"
	"strings"

	"github.com/hospadmin/console/core/grid"
	"github.com/hospadmin/console/core/query"
	"github.com/hospadmin/console/core/screens"
	"github.com/hospadmin/console/core/views"
	"github.com/hospadmin/console/datasources"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

// loadFailedMessage is shown above an empty grid when the store fails.
const loadFailedMessage = "The records could not be loaded. Please try again later."

func (s *Server) screen(c echo.Context) (*screens.Screen, error) {
	screen, err := s.screens.Get(c.Param("name"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "unknown screen "+c.Param("name")).SetInternal(err)
	}
	return screen, nil
}

// records lists the entity of screen. A store failure is logged and
// yields no records plus the banner message.
func (s *Server) records(c echo.Context, screen *screens.Screen) ([]grid.Fields, string) {
	records, err := s.store.List(c.Request().Context(), screen.Entity)
	if err != nil {
		s.logger.Error().Err(err).
			Str("request_id", requestID(c)).
			Str("screen", screen.Name).
			Msg("listing records")
		return nil, loadFailedMessage
	}
	return records, ""
}

func (s *Server) handleLanding(c echo.Context) error {
	counts, err := datasources.Counts(c.Request().Context(), s.store, s.screens.Entities())
	if err != nil {
		s.logger.Warn().Err(err).Str("request_id", requestID(c)).Msg("counting records")
		counts = nil
	}
	vm := views.BuildLandingViewModel(s.title, s.subtitle, s.screens.All(), counts)

	var buf bytes.Buffer
	if err := s.renderer.RenderLanding(&buf, vm); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (s *Server) handleGrid(c echo.Context) error {
	screen, err := s.screen(c)
	if err != nil {
		return err
	}
	q := query.NewQuery(c.Request().URL)
	records, banner := s.records(c, screen)

	g, err := views.NewGrid(screen, records, q)
	if err != nil {
		return err
	}
	vm := views.BuildGridViewModel(screen, g.Build(), q)
	vm.ErrorMessage = banner

	var buf bytes.Buffer
	if err := s.renderer.RenderGrid(&buf, vm); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (s *Server) handleTree(c echo.Context) error {
	screen, err := s.screen(c)
	if err != nil {
		return err
	}
	if !screen.HasTree() {
		return echo.NewHTTPError(http.StatusNotFound, "screen "+screen.Name+" has no tree view")
	}
	q := query.NewQuery(c.Request().URL)
	records, banner := s.records(c, screen)

	vm, err := views.BuildTreeViewModel(screen, records, q)
	if err != nil {
		return err
	}
	vm.ErrorMessage = banner

	var buf bytes.Buffer
	if err := s.renderer.RenderTree(&buf, vm); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// handleRowActive is the target of the row action buttons. It updates the
// record and redirects back to the page the form was posted from.
func (s *Server) handleRowActive(c echo.Context) error {
	screen, err := s.screen(c)
	if err != nil {
		return err
	}
	active, err := cast.ToBoolE(c.FormValue("active"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid active value").SetInternal(err)
	}
	id := recordID(c)
	if _, err := s.store.SetActive(c.Request().Context(), screen.Entity, id, active); err != nil {
		return storeError(err)
	}
	s.logger.Info().
		Str("request_id", requestID(c)).
		Str("entity", screen.Entity).
		Str("id", id).
		Bool("active", active).
		Msg("active status changed")

	return c.Redirect(http.StatusSeeOther, backURL(c.Request().Referer(), screen.Name))
}

// backURL returns the local screen URL of referer, or the screen's grid
// when referer points elsewhere.
func backURL(referer, screen string) string {
	fallback := "/screens/" + url.PathEscape(screen)
	u, err := url.Parse(referer)
	if err != nil || (u.Path != fallback && !strings.HasPrefix(u.Path, fallback+"/")) {
		return fallback
	}
	return u.RequestURI()
}

func requestID(c echo.Context) string {
	rid, _ := c.Get("request_id").(string)
	return rid
}

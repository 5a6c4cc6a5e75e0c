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

package rendering

import (
	"embed"
	"fmt"
	"io"

	"github.com/google/safehtml/template"
	"github.com/hospadmin/console/core/views"
)

//go:embed templates/*
var templateFS embed.FS

// Renderer handles rendering of view models to HTML
type Renderer struct {
	gridTemplate    *template.Template
	treeTemplate    *template.Template
	landingTemplate *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	gridTemplate, err := template.New("grid.html").ParseFS(trustedFS, "templates/grid.html", "templates/head.html")
	if err != nil {
		return nil, fmt.Errorf("parsing grid template: %w", err)
	}

	treeTemplate, err := template.New("tree.html").ParseFS(trustedFS, "templates/tree.html", "templates/head.html")
	if err != nil {
		return nil, fmt.Errorf("parsing tree template: %w", err)
	}

	landingTemplate, err := template.New("landing.html").ParseFS(trustedFS, "templates/landing.html", "templates/head.html")
	if err != nil {
		return nil, fmt.Errorf("parsing landing template: %w", err)
	}

	return &Renderer{
		gridTemplate:    gridTemplate,
		treeTemplate:    treeTemplate,
		landingTemplate: landingTemplate,
	}, nil
}

// RenderGrid renders a GridViewModel to the provided writer
func (r *Renderer) RenderGrid(w io.Writer, vm views.GridViewModel) error {
	return r.gridTemplate.Execute(w, vm)
}

// RenderTree renders a TreeViewModel to the provided writer
func (r *Renderer) RenderTree(w io.Writer, vm views.TreeViewModel) error {
	return r.treeTemplate.Execute(w, vm)
}

// RenderLanding renders a LandingViewModel to the provided writer
func (r *Renderer) RenderLanding(w io.Writer, vm views.LandingViewModel) error {
	return r.landingTemplate.Execute(w, vm)
}

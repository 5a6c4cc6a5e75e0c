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

package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hospadmin/console/core/grid"
)

// Browser is an interactive grid: arrow keys move the cursor, enter or
// "s" toggles the sort of the current column and "/" edits the search
// term.
type Browser[R grid.Record] struct {
	title     string
	grid      *grid.Grid[R]
	search    textinput.Model
	searching bool
	// previous is the term restored when a search edit is cancelled.
	previous string

	col, row, offset int
	width, height    int
	plain            bool

	titleStyle, statusStyle lipgloss.Style
}

// NewBrowser returns a browser over g. The grid is driven by the browser
// from then on.
func NewBrowser[R grid.Record](title string, g *grid.Grid[R], plain bool) *Browser[R] {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"
	search.CharLimit = 128
	search.SetValue(g.SearchTerm())

	base := lipgloss.NewStyle()
	return &Browser[R]{
		title:       title,
		grid:        g,
		search:      search,
		height:      24,
		plain:       plain,
		titleStyle:  base.Copy().Bold(true).Padding(0, 1),
		statusStyle: base.Copy().Faint(true).Padding(0, 1),
	}
}

// Init implements tea.Model.
func (b *Browser[R]) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Browser[R]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.clamp()
		return b, nil
	case tea.KeyMsg:
		if b.searching {
			return b, b.updateSearch(msg)
		}
		return b, b.handleKey(msg)
	}
	if b.searching {
		var cmd tea.Cmd
		b.search, cmd = b.search.Update(msg)
		return b, cmd
	}
	return b, nil
}

func (b *Browser[R]) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "left", "h":
		b.col--
	case "right", "l":
		b.col++
	case "up", "k":
		b.row--
	case "down", "j":
		b.row++
	case "pgup":
		b.row -= b.pageSize()
	case "pgdown":
		b.row += b.pageSize()
	case "home", "g":
		b.row = 0
	case "end", "G":
		b.row = len(b.grid.Rows()) - 1
	case "enter", "s":
		visible := b.grid.VisibleColumns()
		if b.col >= 0 && b.col < len(visible) {
			b.grid.ToggleSort(visible[b.col].Key)
		}
	case "/":
		b.searching = true
		b.previous = b.grid.SearchTerm()
		return b.search.Focus()
	case "esc":
		b.search.SetValue("")
		b.grid.SetSearchTerm("")
	}
	b.clamp()
	return nil
}

func (b *Browser[R]) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		b.searching = false
		b.search.Blur()
		b.clamp()
		return nil
	case tea.KeyEsc:
		b.searching = false
		b.search.Blur()
		b.search.SetValue(b.previous)
		b.grid.SetSearchTerm(b.previous)
		b.clamp()
		return nil
	case tea.KeyCtrlC:
		return tea.Quit
	}
	var cmd tea.Cmd
	b.search, cmd = b.search.Update(msg)
	b.grid.SetSearchTerm(b.search.Value())
	b.row = 0
	b.clamp()
	return cmd
}

// pageSize is the number of rows that fit under the title, the search
// line, the table borders and the status line.
func (b *Browser[R]) pageSize() int {
	return max(1, b.height-8)
}

func (b *Browser[R]) clamp() {
	cols := len(b.grid.VisibleColumns())
	b.col = min(max(b.col, 0), max(cols-1, 0))

	rows := len(b.grid.Rows())
	b.row = min(max(b.row, 0), max(rows-1, 0))

	page := b.pageSize()
	if b.row < b.offset {
		b.offset = b.row
	}
	if b.row >= b.offset+page {
		b.offset = b.row - page + 1
	}
	b.offset = max(0, min(b.offset, max(rows-page, 0)))
}

// View implements tea.Model.
func (b *Browser[R]) View() string {
	view := b.grid.Build()

	var sb strings.Builder
	sb.WriteString(b.titleStyle.Render(b.title))
	sb.WriteString("\n")
	if b.searching || b.grid.SearchTerm() != "" {
		sb.WriteString(b.search.View())
		sb.WriteString("\n")
	}

	opts := Options{
		Plain:        b.plain,
		ActiveColumn: b.col,
		ActiveRow:    b.row,
		Offset:       b.offset,
		Limit:        b.pageSize(),
	}
	sb.WriteString(Render(view, opts))
	sb.WriteString(b.statusStyle.Render(b.status(view)))
	return sb.String()
}

func (b *Browser[R]) status(view grid.View[R]) string {
	status := fmt.Sprintf("%d of %d records", len(view.Rows), view.TotalRows)
	if !view.Sort.IsZero() {
		status += fmt.Sprintf(" · sorted by %s %s", view.Sort.OrderBy, view.Sort.Direction)
	}
	return status + " · ←/→ column · enter sort · / search · q quit"
}

// Run starts an interactive session on the terminal.
func Run[R grid.Record](b *Browser[R]) error {
	_, err := tea.NewProgram(b, tea.WithAltScreen()).Run()
	return err
}

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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hospadmin/console/core/config"
	"github.com/hospadmin/console/core/grid"
	"github.com/hospadmin/console/core/logging"
	"github.com/hospadmin/console/core/query"
	"github.com/hospadmin/console/core/screens"
	"github.com/hospadmin/console/core/server"
	"github.com/hospadmin/console/core/terminal"
	"github.com/hospadmin/console/core/views"
	"github.com/hospadmin/console/datasources"
	"github.com/hospadmin/console/demo"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what every command needs once flags are parsed.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
}

func main() {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:           "hospadmin",
		Short:         "Hospital administration console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console or json)")
	flags.String("store", "memory", "data store driver (memory, csv, sqlite, postgres)")
	flags.String("dsn", "", "sqlite path or postgres connection url")
	flags.String("csv-dir", "", "directory of <entity>.csv files for the csv store")
	flags.String("screens", "", "screen definitions file (default: built-in screens)")
	for key, flag := range map[string]string{
		config.KeyLogLevel:    "log-level",
		config.KeyLogFormat:   "log-format",
		config.KeyStoreDriver: "store",
		config.KeyStoreDSN:    "dsn",
		config.KeyStoreCSVDir: "csv-dir",
		config.KeyScreensFile: "screens",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(a.serveCmd())
	rootCmd.AddCommand(a.renderCmd())
	rootCmd.AddCommand(a.browseCmd())
	rootCmd.AddCommand(a.seedCmd())
	rootCmd.AddCommand(a.screensCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) setup() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.Stderr(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// screens returns the configured screen definitions.
func (a *app) screens() (*screens.Registry, error) {
	if a.cfg.Screens.File == "" {
		return demo.Screens()
	}
	return screens.LoadFile(a.cfg.Screens.File)
}

// openStore opens the configured store. The in-memory store starts with
// the demo records.
func (a *app) openStore(ctx context.Context) (datasources.Store, error) {
	store, err := datasources.Open(ctx, a.cfg.DataSource(), a.logger)
	if err != nil {
		return nil, err
	}
	if a.cfg.Store.Driver == "memory" {
		if err := demo.Seed(ctx, store.(datasources.Seeder)); err != nil {
			store.Close()
			return nil, err
		}
	}
	return store, nil
}

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the console over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			registry, err := a.screens()
			if err != nil {
				return err
			}
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			manager := datasources.NewManager(store)
			defer manager.Close()

			srv, err := server.New(manager, registry, a.logger,
				server.WithTitle(demo.DefaultProduct.Title, demo.DefaultProduct.Subtitle))
			if err != nil {
				return err
			}
			return srv.Start(ctx, a.cfg.Addr)
		},
	}
	cmd.Flags().String("addr", "127.0.0.1:8097", "listen address")
	_ = a.v.BindPFlag(config.KeyAddr, cmd.Flags().Lookup("addr"))
	return cmd
}

// gridOptions are the flags shared by render and browse.
type gridOptions struct {
	sort    string
	desc    bool
	search  string
	columns []string
	filters []string
	plain   bool
}

func (o *gridOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.sort, "sort", "", "column to sort by")
	f.BoolVar(&o.desc, "desc", false, "sort descending")
	f.StringVar(&o.search, "search", "", "search term")
	f.StringSliceVar(&o.columns, "columns", nil, "visible columns (default: the screen's)")
	f.StringArrayVar(&o.filters, "filter", nil, "column filter as key=expression (repeatable)")
	f.BoolVar(&o.plain, "plain", false, "disable colors")
}

func (o *gridOptions) query(screen string) (*query.Query, error) {
	q := &query.Query{
		Path:     "/screens/" + screen,
		Search:   o.search,
		Columns:  o.columns,
		Filters:  make(map[string]string, len(o.filters)),
		Expanded: []string{},
	}
	if o.sort != "" {
		q.Sort = grid.SortState{OrderBy: o.sort, Direction: grid.Ascending}
		if o.desc {
			q.Sort.Direction = grid.Descending
		}
	}
	for _, f := range o.filters {
		key, expr, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q, want key=expression", f)
		}
		q.Filters[key] = expr
	}
	return q, nil
}

// screenGrid loads the records of the named screen into a grid.
func (a *app) screenGrid(ctx context.Context, name string, o *gridOptions) (*screens.Screen, *grid.Grid[grid.Fields], error) {
	registry, err := a.screens()
	if err != nil {
		return nil, nil, err
	}
	screen, err := registry.Get(name)
	if err != nil {
		return nil, nil, err
	}
	q, err := o.query(name)
	if err != nil {
		return nil, nil, err
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer store.Close()

	records, err := store.List(ctx, screen.Entity)
	if err != nil {
		return nil, nil, err
	}
	g, err := views.NewGrid(screen, records, q)
	if err != nil {
		return nil, nil, err
	}
	if o.sort != "" && g.Sort().IsZero() {
		a.logger.Warn().Str("column", o.sort).Msg("column is not sortable, showing unsorted")
	}
	return screen, g, nil
}

func (a *app) renderCmd() *cobra.Command {
	opts := &gridOptions{}
	cmd := &cobra.Command{
		Use:   "render <screen>",
		Short: "Print a screen's grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, g, err := a.screenGrid(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			ropts := terminal.DefaultOptions()
			ropts.Plain = opts.plain
			fmt.Fprint(cmd.OutOrStdout(), terminal.Render(g.Build(), ropts))
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) browseCmd() *cobra.Command {
	opts := &gridOptions{}
	cmd := &cobra.Command{
		Use:   "browse <screen>",
		Short: "Browse a screen's grid interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			screen, g, err := a.screenGrid(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return terminal.Run(terminal.NewBrowser(screen.Title, g, opts.plain))
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Copy the demo records into the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.Seedable() {
				return fmt.Errorf("store driver %q does not keep records, use sqlite or postgres", a.cfg.Store.Driver)
			}
			ctx := cmd.Context()
			store, err := datasources.Open(ctx, a.cfg.DataSource(), a.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			seeder, ok := store.(datasources.Seeder)
			if !ok {
				return errors.New("store does not support seeding")
			}
			if err := demo.Seed(ctx, seeder); err != nil {
				return err
			}
			a.logger.Info().Str("driver", a.cfg.Store.Driver).Msg("demo records seeded")
			return nil
		},
	}
}

func (a *app) screensCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "screens",
		Short: "List the configured screens",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := a.screens()
			if err != nil {
				return err
			}
			g, err := screenList(registry)
			if err != nil {
				return err
			}
			ropts := terminal.DefaultOptions()
			ropts.Plain = plain
			fmt.Fprint(cmd.OutOrStdout(), terminal.Render(g.Build(), ropts))
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors")
	return cmd
}

// screenList shows the screen definitions themselves as a grid.
func screenList(registry *screens.Registry) (*grid.Grid[grid.Fields], error) {
	records := make([]grid.Fields, 0, len(registry.All()))
	for _, s := range registry.All() {
		records = append(records, grid.Fields{
			"name":    s.Name,
			"title":   s.Title,
			"entity":  s.Entity,
			"columns": int64(len(s.Columns)),
			"tree":    s.HasTree(),
		})
	}
	yesNo, _ := screens.Formatter("yesno")
	return grid.New([]grid.Column[grid.Fields]{
		{Key: "name", Header: "Name", Visible: true},
		{Key: "title", Header: "Title", Visible: true},
		{Key: "entity", Header: "Entity", Visible: true},
		{Key: "columns", Header: "Columns", Visible: true},
		{Key: "tree", Header: "Tree", Visible: true, Formatter: yesNo},
	}, records)
}

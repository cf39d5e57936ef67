package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mchmarny/navmenu/pkg/config"
	"github.com/mchmarny/navmenu/pkg/logger"
	"github.com/mchmarny/navmenu/pkg/menu"
	"github.com/mchmarny/navmenu/pkg/source"
)

// app holds state shared by the subcommands.
type app struct {
	cfgFile  string
	logLevel string
	menuFile string
	cfg      config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "navmenu",
		Short:         "Build navigation menus from item files",
		Long:          "navmenu builds a navigation tree from a YAML, TOML or JSON item file,\nmarks the items matching a route and renders it as JSON, text or HTML pages.",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./navmenu.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().StringVarP(&a.menuFile, "file", "f", "", "menu item file (overrides config)")

	root.AddCommand(newServeCmd(a), newRenderCmd(a), newTreeCmd(a))

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.menuFile != "" {
		cfg.MenuFile = a.menuFile
	}
	a.cfg = cfg

	logger.SetDefaultLogger(cmd.Root().Name(), version, cfg.LogLevel)
	return nil
}

// build loads the item file once and builds a menu for route.
func (a *app) build(ctx context.Context, route string) (*menu.Menu, error) {
	m := a.cfg.Menu.Apply(menu.New(source.NewFile(a.cfg.MenuFile))).
		SetActiveRoute(route)

	if err := m.SetMenu(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

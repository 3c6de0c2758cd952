package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/nikbrunner/linkvault/internal/app"
	"github.com/nikbrunner/linkvault/internal/browser"
	lvcli "github.com/nikbrunner/linkvault/internal/cli"
	"github.com/nikbrunner/linkvault/internal/logger"
	"github.com/nikbrunner/linkvault/internal/tui"
)

var version = "dev"

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

func main() {
	cmd := &cli.Command{
		Name:      "lv",
		Usage:     "Save, browse and open your favorite websites",
		UsageText: "lv [global options] [command | query...]",
		Version:   version,
		Action:    runDefault,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: ~/.config/linkvault/config.yaml)",
				Sources: cli.EnvVars("LINKVAULT_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "backend",
				Usage:   "Storage backend: file, sqlite, redis or memory",
				Sources: cli.EnvVars("LINKVAULT_BACKEND"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level: debug, info, warn or error",
				Sources: cli.EnvVars("LINKVAULT_LOG_LEVEL"),
			},
		},
		Commands: commands(),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

// runDefault opens the terminal UI, or quick-opens when a query is given.
func runDefault(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		return runFind(ctx, cmd)
	}
	return runUI(ctx, cmd)
}

func appOptions(cmd *cli.Command, logToFile bool) app.Options {
	return app.Options{
		ConfigPath: cmd.String("config"),
		Backend:    cmd.String("backend"),
		LogLevel:   cmd.String("log-level"),
		LogToFile:  logToFile,
	}
}

// withApp wires the application for one command and closes it afterwards.
func withApp(ctx context.Context, cmd *cli.Command, logToFile bool, fn func(*app.App) error) (err error) {
	a, err := app.New(ctx, appOptions(cmd, logToFile))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close storage: %w", closeErr)
		}
	}()
	return fn(a)
}

// withCommands is withApp for the plain CLI commands.
func withCommands(ctx context.Context, cmd *cli.Command, fn func(*lvcli.Commands) error) error {
	return withApp(ctx, cmd, false, func(a *app.App) error {
		return fn(lvcli.NewCommands(a.Vault, lvcli.WithLogger(a.Log)))
	})
}

func runUI(ctx context.Context, cmd *cli.Command) error {
	return withApp(ctx, cmd, true, func(a *app.App) error {
		welcome := a.Vault.FirstRun(ctx)
		if welcome {
			a.Vault.SeedIfEmpty(ctx)
		}

		ui := tui.NewApp(tui.AppParams{
			Context:       ctx,
			Vault:         a.Vault,
			Categories:    a.Config.UI.Categories,
			RecentLimit:   a.Config.UI.RecentLimit,
			ToastDuration: a.Config.UI.ToastDuration,
			OpenURL:       browser.Open,
			Welcome:       welcome,
		})

		start := time.Now()
		if _, err := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
			return fmt.Errorf("run terminal UI: %w", err)
		}
		a.Log.Debug("terminal UI closed", logger.Duration("elapsed", time.Since(start)))
		return nil
	})
}

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/nikbrunner/linkvault/internal/app"
	lvcli "github.com/nikbrunner/linkvault/internal/cli"
	"github.com/nikbrunner/linkvault/internal/culler"
	"github.com/nikbrunner/linkvault/internal/httpapi"
	"github.com/nikbrunner/linkvault/internal/logger"
	"github.com/nikbrunner/linkvault/internal/mcpserver"
	"github.com/nikbrunner/linkvault/internal/model"
	"github.com/nikbrunner/linkvault/internal/storage"
)

const watchDebounce = 200 * time.Millisecond

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "ui",
			Usage:  "Open the interactive terminal UI",
			Action: runUI,
		},
		{
			Name:      "add",
			Usage:     "Save a website",
			ArgsUsage: "<name> <url>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "category", Aliases: []string{"C"}, Usage: "Category, e.g. ai, web, hacks"},
				&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Short description"},
				&cli.StringFlag{Name: "thumbnail", Usage: "Custom image URL for the card"},
			},
			Action: runAdd,
		},
		{
			Name:      "edit",
			Usage:     "Change fields of a saved website",
			ArgsUsage: "<id>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "name", Usage: "Display name"},
				&cli.StringFlag{Name: "url", Usage: "Website URL"},
				&cli.StringFlag{Name: "category", Aliases: []string{"C"}, Usage: "Category"},
				&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Short description"},
				&cli.StringFlag{Name: "thumbnail", Usage: "Custom image URL, empty to remove"},
			},
			Action: runEdit,
		},
		{
			Name:      "rm",
			Aliases:   []string{"delete"},
			Usage:     "Delete one or more websites",
			ArgsUsage: "<id> [id...]",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withCommands(ctx, cmd, func(c *lvcli.Commands) error {
					return c.Remove(ctx, cmd.Args().Slice()...)
				})
			},
		},
		{
			Name:    "list",
			Aliases: []string{"ls"},
			Usage:   "List saved websites",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "category", Aliases: []string{"C"}, Usage: "Only websites in this category"},
				&cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Usage: "Category filter applied on top (all for none)"},
				&cli.StringFlag{Name: "sort", Aliases: []string{"s"}, Usage: "default, name-asc, name-desc, date-new or date-old"},
				&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Name or URL substring; replaces --category"},
				&cli.BoolFlag{Name: "json", Usage: "Print JSON"},
			},
			Action: runList,
		},
		{
			Name:  "recent",
			Usage: "List recently added websites",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Maximum number of websites (default from config)"},
				&cli.BoolFlag{Name: "json", Usage: "Print JSON"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withCommands(ctx, cmd, func(c *lvcli.Commands) error {
					return c.Recent(int(cmd.Int("limit")), cmd.Bool("json"))
				})
			},
		},
		{
			Name:  "categories",
			Usage: "List categories with their record counts",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "json", Usage: "Print JSON"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withCommands(ctx, cmd, func(c *lvcli.Commands) error {
					return c.Categories(cmd.Bool("json"))
				})
			},
		},
		{
			Name:      "open",
			Usage:     "Open a website in the browser",
			ArgsUsage: "<id>",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "copy", Aliases: []string{"y"}, Usage: "Copy the URL instead of opening it"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				id, err := requireArg(cmd, "id")
				if err != nil {
					return err
				}
				return withCommands(ctx, cmd, func(c *lvcli.Commands) error {
					return c.Open(id, cmd.Bool("copy"))
				})
			},
		},
		{
			Name:      "find",
			Usage:     "Fuzzy search and open a website",
			ArgsUsage: "<query...>",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "copy", Aliases: []string{"y"}, Usage: "Copy the URL instead of opening it"},
			},
			Action: runFind,
		},
		{
			Name:      "import",
			Usage:     "Import websites from Netscape bookmark HTML or lv JSON",
			ArgsUsage: "<file>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				path, err := requireArg(cmd, "file")
				if err != nil {
					return err
				}
				return withCommands(ctx, cmd, func(c *lvcli.Commands) error {
					return c.Import(ctx, path)
				})
			},
		},
		{
			Name:      "export",
			Usage:     "Export the collection (- for stdout)",
			ArgsUsage: "[path]",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "format", Value: "html", Usage: "html or json"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withCommands(ctx, cmd, func(c *lvcli.Commands) error {
					return c.Export(cmd.Args().First(), cmd.String("format"))
				})
			},
		},
		{
			Name:  "check",
			Usage: "Check every URL for dead links",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "concurrency", Usage: "Parallel requests (default from config)"},
				&cli.DurationFlag{Name: "timeout", Usage: "Per-request timeout (default from config)"},
				&cli.BoolFlag{Name: "prune", Usage: "Delete websites that are gone (404/410)"},
			},
			Action: runCheck,
		},
		{
			Name:  "seed",
			Usage: "Add the sample collection to an empty store",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withCommands(ctx, cmd, func(c *lvcli.Commands) error {
					return c.Seed(ctx)
				})
			},
		},
		{
			Name:  "serve",
			Usage: "Serve the collection as a local JSON API",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "addr", Usage: "Listen address (default from config)", Sources: cli.EnvVars("LINKVAULT_ADDR")},
				&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "Reload when the data file changes on disk"},
			},
			Action: runServe,
		},
		{
			Name:   "mcp",
			Usage:  "Serve the collection as MCP tools over stdio",
			Action: runMCP,
		},
	}
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	arg := strings.TrimSpace(cmd.Args().First())
	if arg == "" {
		return "", fmt.Errorf("missing <%s>; see lv %s --help", name, cmd.Name)
	}
	return arg, nil
}

func runAdd(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return fmt.Errorf("usage: lv add <name> <url> [--category ...] [--description ...]")
	}

	in := model.BookmarkInput{
		Name:        cmd.Args().Get(0),
		URL:         cmd.Args().Get(1),
		Category:    cmd.String("category"),
		Description: cmd.String("description"),
	}
	if thumb := strings.TrimSpace(cmd.String("thumbnail")); thumb != "" {
		in.ThumbnailURL = &thumb
	}

	return withCommands(ctx, cmd, func(c *lvcli.Commands) error {
		return c.Add(ctx, in)
	})
}

func runEdit(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}

	var opts lvcli.EditOptions
	set := func(flag string) *string {
		if !cmd.IsSet(flag) {
			return nil
		}
		v := cmd.String(flag)
		return &v
	}
	opts.Name = set("name")
	opts.URL = set("url")
	opts.Category = set("category")
	opts.Description = set("description")
	opts.Thumbnail = set("thumbnail")

	return withCommands(ctx, cmd, func(c *lvcli.Commands) error {
		return c.Edit(ctx, id, opts)
	})
}

func runList(ctx context.Context, cmd *cli.Command) error {
	criterion, err := model.ParseSort(cmd.String("sort"))
	if err != nil {
		return err
	}

	return withCommands(ctx, cmd, func(c *lvcli.Commands) error {
		return c.List(lvcli.ListOptions{
			Category: cmd.String("category"),
			Filter:   cmd.String("filter"),
			Sort:     criterion,
			Search:   cmd.String("search"),
			JSON:     cmd.Bool("json"),
		})
	})
}

func runFind(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("usage: lv find <query>")
	}

	return withCommands(ctx, cmd, func(c *lvcli.Commands) error {
		return c.Find(query, cmd.Bool("copy"))
	})
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	return withApp(ctx, cmd, false, func(a *app.App) error {
		opts := culler.Options{
			Concurrency:    a.Config.Check.Concurrency,
			Timeout:        a.Config.Check.Timeout,
			ExcludeDomains: a.Config.Check.ExcludeDomains,
		}
		if n := int(cmd.Int("concurrency")); n > 0 {
			opts.Concurrency = n
		}
		if d := cmd.Duration("timeout"); d > 0 {
			opts.Timeout = d
		}

		c := lvcli.NewCommands(a.Vault, lvcli.WithLogger(a.Log))
		return c.Check(ctx, opts, cmd.Bool("prune"))
	})
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	return withApp(ctx, cmd, false, func(a *app.App) error {
		addr := a.Config.HTTP.Addr
		if cmd.String("addr") != "" {
			addr = cmd.String("addr")
		}

		var background []func(context.Context) error
		if cmd.Bool("watch") {
			path := a.DataFile()
			if path == "" {
				a.Log.Warn("--watch needs the file backend; ignoring", logger.String("backend", string(a.Config.Storage.Backend)))
			} else {
				background = append(background, func(ctx context.Context) error {
					return storage.WatchFile(ctx, path, watchDebounce, a.Log, func() {
						a.Vault.Reload(ctx)
					})
				})
			}
		}

		return httpapi.Serve(ctx, addr, httpapi.NewRouter(a.Vault, a.Log), a.Log, background...)
	})
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	return withApp(ctx, cmd, true, func(a *app.App) error {
		a.Log.Info("MCP server starting", logger.Int("records", a.Vault.Len()))
		return mcpserver.New(a.Vault, version, a.Log).ServeStdio()
	})
}

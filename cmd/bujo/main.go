package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/bujo/internal/cli"
	"github.com/julianstephens/bujo/internal/cli/auth"
	"github.com/julianstephens/bujo/internal/cli/collections"
	"github.com/julianstephens/bujo/internal/cli/entries"
	"github.com/julianstephens/bujo/internal/cli/habits"
	"github.com/julianstephens/bujo/internal/cli/system"
	"github.com/julianstephens/bujo/internal/config"
	"github.com/julianstephens/bujo/internal/constants"
	bujoerrors "github.com/julianstephens/bujo/internal/errors"
	"github.com/julianstephens/bujo/internal/journal"
	"github.com/julianstephens/bujo/internal/logger"
	"github.com/julianstephens/bujo/internal/session"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	Debug   bool   `help:"Log debug output to stderr."`
	Date    string `help:"Journal date in YYYY-MM-DD format (default: today)."`

	Init    system.InitCmd    `cmd:"" help:"Initialize bujo storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive journal." default:"1"`
	Mcp     system.McpCmd     `cmd:"" help:"Serve the journal as MCP tools over stdio."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage database credentials in the OS keyring."`

	Login   auth.LoginCmd   `cmd:"" help:"Sign in and store a session token."`
	Logout  auth.LogoutCmd  `cmd:"" help:"Forget the stored session."`
	Whoami  auth.WhoamiCmd  `cmd:"" help:"Show the signed-in user."`
	Profile auth.ProfileCmd `cmd:"" help:"Create the profile for the signed-in user if missing."`

	Collection collections.CollectionCmd `cmd:"" help:"Manage collections."`
	Entry      entries.EntryCmd          `cmd:"" help:"Read and write the daily log."`
	Link       entries.LinkCmd           `cmd:"" help:"Manage backlinks between entries."`
	Export     entries.ExportCmd         `cmd:"" help:"Export the daily log for --date."`
	Habit      habits.HabitCmd           `cmd:"" help:"Manage habits and habit tracking."`
}

// Commands that do not read journal data, or run before the schema is current
var skipLoad = map[string]bool{
	"init":    true,
	"migrate": true,
	"keyring": true,
	"logout":  true,
	"whoami":  true,
}

func needsStore(command string) bool {
	name, _, _ := strings.Cut(command, " ")
	return !skipLoad[name]
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Bullet journal: daily log, collections, habits and backlinks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		bujoerrors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Logging.Debug = true
	}
	if err := logger.Init(logger.Config{
		Debug:     cfg.Logging.Debug,
		Level:     cfg.Logging.Level,
		ConfigDir: cfg.Dir,
	}); err != nil {
		bujoerrors.Fatal(err)
	}

	store, err := cli.NewStore(cfg)
	if err != nil {
		bujoerrors.Fatal(err)
	}
	defer store.Close()

	secret, err := session.ResolveSecret(cfg.Session.Secret)
	if err != nil {
		logger.Warn("No session secret available", "error", err)
	}
	sessions := session.NewManager(secret, cfg.Session.TTL, nil)

	runCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	appCtx := &cli.Context{
		Ctx:      runCtx,
		Config:   cfg,
		Store:    store,
		Sessions: sessions,
		Journal:  journal.NewClient(store, sessions),
		Date:     CLI.Date,
	}

	if needsStore(ctx.Command()) {
		if err := store.Load(runCtx); err != nil {
			bujoerrors.Fatal(err)
		}
	}

	logger.Debug("Running command", "command", ctx.Command(), "driver", cfg.Database.Driver)
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		bujoerrors.Fatal(err)
	}
}

// Command marketplace is a terminal client for the barber marketplace. Each
// invocation restores the saved session, verifies it against the API and then
// runs one subcommand.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/barbercommunity/marketplace/internal/core/domain"
	"github.com/barbercommunity/marketplace/internal/core/ports"
	"github.com/barbercommunity/marketplace/internal/core/service"
	"github.com/barbercommunity/marketplace/internal/infrastructure/config"
	"github.com/barbercommunity/marketplace/internal/infrastructure/credstore"
	redisstore "github.com/barbercommunity/marketplace/internal/infrastructure/db/redis"
	"github.com/barbercommunity/marketplace/internal/infrastructure/http/apiclient"
	"github.com/barbercommunity/marketplace/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %s\n", domain.ErrorMessage(err))
		os.Exit(1)
	}
}

// globalFlags override the environment configuration.
type globalFlags struct {
	api            string
	backend        string
	credentialPath string
	logLevel       string
	json           bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.LoadClient(ctx)
	if err != nil {
		return err
	}

	var gf globalFlags
	flagSet := pflag.NewFlagSet("marketplace", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&gf.api, "api", cfg.APIURL, "marketplace API origin")
	flagSet.StringVar(&gf.backend, "credential-backend", cfg.CredentialBackend, "where the session credential is kept: file, redis or memory")
	flagSet.StringVar(&gf.credentialPath, "credential-path", cfg.CredentialPath, "credential file for the file backend (default $HOME/.marketplace/<key>)")
	flagSet.StringVar(&gf.logLevel, "log-level", cfg.LogLevel, "log level: trace, debug, info, warn, error")
	flagSet.BoolVar(&gf.json, "json", false, "print raw JSON")
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	cfg.APIURL = gf.api
	cfg.CredentialBackend = gf.backend
	cfg.CredentialPath = gf.credentialPath
	cfg.LogLevel = gf.logLevel
	if err := cfg.Validate(); err != nil {
		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printUsage(stderr, flagSet)
		return fmt.Errorf("missing command")
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		printUsage(stderr, flagSet)
		return fmt.Errorf("unknown command %q", rest[0])
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Output: stderr})

	a, err := newApp(ctx, cfg, stdout)
	if err != nil {
		return err
	}
	defer a.close()
	a.json = gf.json

	return cmd.run(ctx, a, rest[1:])
}

// app holds the wiring every subcommand shares.
type app struct {
	session *service.SessionManager
	market  *service.MarketplaceService
	out     io.Writer
	json    bool
	closers []func() error
}

func newApp(ctx context.Context, cfg *config.ClientConfig, out io.Writer) (*app, error) {
	a := &app{out: out}

	store, err := a.credentialStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := apiclient.New(cfg.APIURL, apiclient.WithTimeout(cfg.HTTPTimeout))
	a.session = service.NewSessionManager(ctx, store, client, logger.Component("session"))
	client.BindCredentials(a.session)
	a.session.Start(ctx)
	a.market = service.NewMarketplaceService(client, a.session, logger.Component("catalog"))

	return a, nil
}

func (a *app) credentialStore(ctx context.Context, cfg *config.ClientConfig) (ports.CredentialStore, error) {
	switch cfg.CredentialBackend {
	case config.BackendMemory:
		return credstore.NewMemoryStore(), nil
	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return redisstore.NewCredentialStore(client, cfg.CredentialKey), nil
	default:
		path, err := cfg.ResolveCredentialPath()
		if err != nil {
			return nil, err
		}
		return credstore.NewFileStore(path), nil
	}
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c()
	}
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: marketplace [flags] <command> [command flags]\n\nCommands:\n")
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(w, "\nFlags:\n%s", flagSet.FlagUsages())
}

// Package cmd implements the CLI application to manage an investment club.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/club"
	"github.com/etnz/club/config"
	"github.com/etnz/club/date"
	"github.com/etnz/club/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "reports")
	c.Register(&membersCmd{}, "reports")
	c.Register(&holdingsCmd{}, "reports")
	c.Register(&txCmd{}, "reports")
	c.Register(&trackRecordCmd{}, "reports")
	c.Register(&reportCmd{}, "reports")

	c.Register(&depositCmd{}, "transactions")
	c.Register(&withdrawCmd{}, "transactions")
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&dividendCmd{}, "transactions")
	c.Register(&addMemberCmd{}, "transactions")
	c.Register(&recordCmd{}, "transactions")

	c.Register(&riskCmd{}, "analysis")
	c.Register(&stressCmd{}, "analysis")
	c.Register(&allocationCmd{}, "analysis")
	c.Register(&adviseCmd{}, "analysis")

	c.Register(&exportCmd{}, "data")
	c.Register(&queryCmd{}, "data")
	c.Register(&serveCmd{}, "data")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	envFile   = flag.String("env-file", ".env", "Path to an optional .env file")
	storeKind = flag.String("store", "", "Store kind (file, sqlite, redis). Overrides CLUB_STORE.")
	storePath = flag.String("store-path", "", "Path of the file or sqlite store. Overrides CLUB_STORE_PATH.")
	logLevel  = flag.String("log-level", "", "Log level (debug, info, warn, error). Overrides CLUB_LOG_LEVEL.")
	raw       = flag.Bool("raw", false, "Print markdown as is, without terminal rendering")
)

// stdout and stderr are where commands write, swapped by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// today is the clock of the CLI.
var today = date.Today

// loadConfig reads the configuration and applies the global flags over it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*envFile)
	if err != nil {
		return cfg, err
	}
	if *storeKind != "" {
		cfg.Store = store.Kind(*storeKind)
	}
	if *storePath != "" {
		cfg.StorePath = *storePath
	}
	if *logLevel != "" {
		if _, err := zerolog.ParseLevel(*logLevel); err != nil {
			return cfg, fmt.Errorf("invalid log level %q: %w", *logLevel, err)
		}
		cfg.LogLevel = *logLevel
	}
	return cfg, nil
}

// session is an opened club with its configuration.
type session struct {
	cfg     config.Config
	log     zerolog.Logger
	backend store.Backend
	club    *club.Club
}

// openClub opens the configured store and the club it holds, seeding the demo
// club on first use. The caller closes the session.
func openClub(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := cfg.Logger(stderr)
	backend, err := store.Open(ctx, cfg.StoreConfig(log))
	if err != nil {
		return nil, err
	}
	c, err := club.Open(ctx, backend, club.DemoPrices(), club.WithLogger(log), club.WithClock(today))
	if err != nil {
		backend.Close()
		return nil, err
	}
	return &session{cfg: cfg, log: log, backend: backend, club: c}, nil
}

func (s *session) Close() error { return s.backend.Close() }

// withClub runs fn on the opened club and reports errors on stderr.
func withClub(ctx context.Context, fn func(s *session) error) subcommands.ExitStatus {
	s, err := openClub(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening club: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()
	if err := fn(s); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders md for the terminal, or prints it as is with -raw.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// parseView parses the -v flag of analysis commands.
func parseView(s string) (club.View, bool) {
	v, err := club.ParseView(s)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing view: %v\n", err)
		return "", false
	}
	return v, true
}

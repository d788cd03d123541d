package cmd

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/club"
	"github.com/etnz/club/server"
	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type serveCmd struct {
	addr string
	cron string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the club JSON API" }
func (*serveCmd) Usage() string {
	return `club serve [-addr <addr>] [-cron <schedule>]

  Serves the club over HTTP until interrupted, and records the month end NAV
  on the last day of every month.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Overrides CLUB_HTTP_ADDR.")
	f.StringVar(&c.cron, "cron", "", "Schedule of the month end job. Overrides CLUB_HISTORY_CRON.")
}

// monthEndJob records the month of today when today is its last day.
func monthEndJob(ctx context.Context, c *club.Club, log zerolog.Logger) func() {
	return func() {
		on := today()
		if on.Add(1).Month() == on.Month() {
			log.Debug().Str("date", on.String()).Msg("not a month end, skipping")
			return
		}
		p, err := c.RecordMonth(ctx, on, 0)
		if err != nil {
			log.Error().Err(err).Str("date", on.String()).Msg("month end recording failed")
			return
		}
		log.Info().Str("date", p.Date.String()).Float64("nav", p.NAV).Msg("month end recorded")
	}
}

// schedule registers the month end job.
func schedule(ctx context.Context, expr string, c *club.Club, log zerolog.Logger) (*cron.Cron, error) {
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(expr, monthEndJob(ctx, c, log)); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", expr, err)
	}
	log.Info().Str("schedule", expr).Str("job", "month-end").Msg("job registered")
	return scheduler, nil
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withClub(ctx, func(s *session) error {
		addr, expr := s.cfg.HTTPAddr, s.cfg.HistoryCron
		if c.addr != "" {
			addr = c.addr
		}
		if c.cron != "" {
			expr = c.cron
		}

		a, err := s.advisor(ctx)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		scheduler, err := schedule(ctx, expr, s.club, s.log.With().Str("component", "scheduler").Logger())
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()

		srv := server.New(server.Config{Log: s.log, Club: s.club, Advisor: a, Addr: addr})
		errc := make(chan error, 1)
		go func() { errc <- srv.Start() }()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Err(err).Msg("server forced to shutdown")
		}
		return <-errc
	})
}

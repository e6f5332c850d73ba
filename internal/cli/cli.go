package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sugamax/meetup-alarm/internal/config"
	"github.com/sugamax/meetup-alarm/internal/discord"
	"github.com/sugamax/meetup-alarm/internal/event"
	"github.com/sugamax/meetup-alarm/internal/filter"
	"github.com/sugamax/meetup-alarm/internal/poster"
	"github.com/sugamax/meetup-alarm/internal/scheduler"
	"github.com/sugamax/meetup-alarm/internal/scraper"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagNow    bool
	flagConfig string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meetup-alarm",
		Short: "Scrape Meetup events and post them to a Discord channel",
		Long: `meetup-alarm scrapes Meetup event listings for the configured locations
and posts new upcoming events to a Discord channel once a week, or
immediately when started with --now.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&flagNow, "now", false, "Post events immediately and exit")
	cmd.Flags().StringVar(&flagConfig, "config", "config.yaml", "Path to config file")

	return cmd
}

// run wires the pipeline together and either runs once or enters the
// weekly schedule loop. Any error returned here is a fatal configuration
// problem; everything after startup is logged and survived.
func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg.Token = os.Getenv("DISCORD_TOKEN")
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	sched, err := scheduler.New(cfg.Schedule)
	if err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	client, err := discord.NewClient(cfg.Token, cfg.Schedule.ChannelID)
	if err != nil {
		return err
	}

	app := &App{
		Locations: cfg.Locations,
		Scraper:   scraper.New(),
		Filter:    filter.New(event.NewSeenSet()),
		Formatter: discord.NewFormatter(sched.Location()),
		Poster:    poster.New(client),
		Scheduler: sched,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if flagNow {
		app.RunOnce(ctx)
		return nil
	}
	return app.Loop(ctx)
}

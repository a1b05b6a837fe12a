// Command trackerctl operates a lab tracker deployment: it provisions the
// DynamoDB tables and drives the API from a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"labtracker/internal/infrastructure/logger"
	"labtracker/pkg/trackerclient"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalFlags struct {
	server  string
	token   string
	session string
	user    string
	verbose bool
}

type cli struct {
	flags globalFlags
	log   *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "trackerctl",
		Short:         "Operate the lab tracker service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if c.flags.verbose {
				level = "debug"
			}
			l, err := logger.New("local", level)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.server, "server", envOr("TRACKER_SERVER", "http://localhost:8080"), "API base URL")
	pf.StringVar(&c.flags.token, "token", os.Getenv("TRACKER_TOKEN"), "bearer token")
	pf.StringVar(&c.flags.session, "session", os.Getenv("TRACKER_SESSION"), "session id used for impersonation")
	pf.StringVar(&c.flags.user, "user", os.Getenv("TRACKER_USER"), "caller id for servers running with auth disabled")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newTablesCmd(c),
		newPipelineCmd(c),
		newQuotesCmd(c),
		newUsageCmd(c),
	)
	return root
}

func (c *cli) client() *trackerclient.Client {
	return trackerclient.New(c.flags.server,
		trackerclient.WithToken(c.flags.token),
		trackerclient.WithSession(c.flags.session),
		trackerclient.WithDevUser(c.flags.user),
		trackerclient.WithLogger(c.log),
	)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Command rediscache is an operator tool for the cache adapter. It loads the
// same configuration a proxy would, activates the adapter against the store
// and replays single cache events from the command line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/rediscache/internal/config"
	"github.com/unkn0wn-root/rediscache/internal/logging"
)

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

// app holds what PersistentPreRunE resolved for the subcommands.
type app struct {
	configPath string
	showStats  bool

	cfg    *config.Config
	logger *logrus.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "rediscache",
		Short:         "Replay proxy cache events against the key-value store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				path = os.Getenv(config.EnvPrefix + "_CONFIG")
			}
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := logging.InitLogger(*cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			a.configPath = path
			a.cfg = cfg
			a.logger = logger
			return nil
		},
	}
	root.SetOut(stdOut)
	root.SetErr(stdErr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (TOML); defaults to $REDISCACHE_CONFIG")
	root.PersistentFlags().BoolVar(&a.showStats, "stats", false, "print store latencies and hook counters on exit")

	root.AddCommand(
		newPingCmd(a),
		newLookupCmd(a),
		newReadCmd(a),
		newWriteCmd(a),
		newDeleteCmd(a),
	)
	return root
}

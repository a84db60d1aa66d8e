// Command arenademo fills a builtin map, an ordered map and a linked list
// with the heap allocator and with a fixed-capacity arena, and prints them.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type config struct {
	capacity  int
	count     int
	logLevel  string
	logFormat string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config
	cmd := &cobra.Command{
		Use:           "arenademo",
		Short:         "Run containers on a fixed-capacity arena allocator",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.logFormat, cfg.logLevel)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), logger, cfg)
		},
	}
	f := cmd.Flags()
	f.IntVar(&cfg.capacity, "capacity", 10, "Slot capacity of each arena.")
	f.IntVar(&cfg.count, "count", 10, "Number of entries inserted into each container.")
	f.StringVar(&cfg.logLevel, "log.level", "info", "Log level: debug, info, warn or error.")
	f.StringVar(&cfg.logFormat, "log.format", "logfmt", "Log format: logfmt or json.")
	return cmd
}

func newLogger(w io.Writer, format, lvl string) (log.Logger, error) {
	var logger log.Logger
	switch format {
	case "logfmt":
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	case "json":
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	default:
		return nil, errors.Errorf("unknown log format %q", format)
	}

	var allow level.Option
	switch lvl {
	case "debug":
		allow = level.AllowDebug()
	case "info":
		allow = level.AllowInfo()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		return nil, errors.Errorf("unknown log level %q", lvl)
	}
	logger = level.NewFilter(logger, allow)
	return log.With(logger, "ts", log.DefaultTimestampUTC), nil
}

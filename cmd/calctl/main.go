package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Asurkatha/calctl/internal/calendar"
	"github.com/Asurkatha/calctl/internal/config"
	"github.com/Asurkatha/calctl/internal/store"
)

var (
	flagDB   string
	flagJSON bool
)

func main() {
	// Best effort: a .env in the working directory may carry CALCTL_*
	// settings.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "calctl",
		Short:         "calctl is a command-line calendar manager",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagDB, "db", "", "path to the events store")
	root.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	root.AddCommand(
		newAddCmd(),
		newListCmd(),
		newShowCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newSearchCmd(),
		newAgendaCmd(),
		newServeCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// newLogger builds the console logger shared by every command.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}

// newEngine wires config, store and engine for one invocation.
func newEngine() (*calendar.Engine, *config.Config, zerolog.Logger, error) {
	cfg := config.Load(flagDB)
	logger := newLogger(cfg.LogLevel)

	st, err := store.Open(cfg.Store.Backend, cfg.Store.Path, logger)
	if err != nil {
		return nil, nil, logger, err
	}
	return calendar.New(st, logger), cfg, logger, nil
}

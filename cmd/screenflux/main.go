package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghalamif/screenflux"
)

func main() {
	args := os.Args[1:]
	cmd := "run"
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "run":
		err = runCommand(args, os.Stdout)
	case "validate":
		err = validateCommand(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	default:
		printUsage(os.Stderr)
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, exitMessage(cmd, err))
		os.Exit(1)
	}
}

func runCommand(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to configuration file (built-in defaults when empty)")
	dryRun := fs.Bool("dry-run", false, "Print line protocol to stdout instead of writing to the sink")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := screenflux.LoadConfig(*cfgPath, func(c *screenflux.Config) {
		if *dryRun {
			c.Sink = screenflux.SinkStdout
		}
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := screenflux.NewRuntime(cfg, screenflux.WithStdout(stdout))
	if err != nil {
		return err
	}
	_, err = rt.Run(ctx)
	return err
}

func validateCommand(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	cfgPath := fs.String("config", "./data/config.yaml", "Path to configuration file to validate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := screenflux.LoadConfig(*cfgPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "config %s looks good (sink=%s, source=%s)\n", *cfgPath, cfg.Sink, cfg.Source.Path)
	return nil
}

// exitMessage renders the diagnostic printed before a non-zero exit.
func exitMessage(cmd string, err error) string {
	var se *screenflux.SourceError
	if errors.As(err, &se) {
		switch {
		case errors.Is(err, screenflux.ErrSourceNotFound):
			return fmt.Sprintf("Could not find knowledgeC.db at %s.", se.Path)
		case errors.Is(err, screenflux.ErrSourceUnreadable):
			return fmt.Sprintf("The knowledgeC.db at %s is not readable.\n"+
				"Please grant Full Disk Access to the application running screenflux (e.g. Terminal, iTerm, VSCode).", se.Path)
		}
	}
	return fmt.Sprintf("screenflux %s: %v", cmd, err)
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `screenflux

Copies macOS Screen Time app usage from knowledgeC.db into a time-series store.

Usage:
  screenflux [command] [flags]

Commands:
  run        Read, transform and write the full usage history once (default)
  validate   Load and validate a config file without touching any database
  help       Show this message

Examples:
  screenflux
  screenflux run -config ./data/config.yaml
  screenflux run -dry-run
  screenflux validate -config ./data/config.yaml
`)
}

// Mealscout browses recipes by area and hides recipes that contain an
// ingredient you want to avoid.
//
// Usage:
//
//	mealscout [-config file] [-region area] [-exclude term] [-admin addr] [-log-file path]
//
// With -region the filtered list is printed once and the program exits.
// Otherwise an interactive prompt starts; type help for commands.
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
	"time"

	"github.com/jonwraymond/mealscout/config"
	"github.com/jonwraymond/mealscout/recipe"
	"github.com/jonwraymond/mealscout/secret"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "mealscout: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("mealscout", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "config file (default: ./mealscout.yaml if present)")
	region := fs.String("region", "", "print the recipes of this area and exit")
	exclude := fs.String("exclude", "", "hide recipes containing this ingredient")
	adminAddr := fs.String("admin", "", "serve health and metrics on this address")
	logFile := fs.String("log-file", "", "append logs to this file instead of stderr")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Fprintln(stdout, "mealscout", version)
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *adminAddr != "" {
		cfg.Admin.Addr = *adminAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.ResolveSecrets(ctx, secret.NewDefaultRegistry()); err != nil {
		return err
	}

	logs := stderr
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logs = f
	}

	a, err := newApp(ctx, cfg, logs, logs)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.Close(shutdownCtx)
	}()

	if cfg.Admin.Addr != "" {
		go func() {
			if err := serveAdmin(ctx, cfg.Admin.Addr, a); err != nil {
				fmt.Fprintf(stderr, "mealscout: admin server: %v\n", err)
			}
		}()
	}

	presenter := newTextPresenter(stdout)
	session, err := a.newSession(presenter)
	if err != nil {
		return err
	}
	defer session.Close()

	if *region != "" {
		session.SetExclusion(*exclude)
		session.SelectRegion(recipe.Region(*region))
		session.Wait()
		if session.Last().LoadFailed {
			return errors.New("could not load recipes")
		}
		return nil
	}

	session.SetExclusion(*exclude)
	fmt.Fprintln(stdout, "mealscout", version, "- type help for commands")
	r := &repl{app: a, session: session, presenter: presenter, out: stdout}
	return r.run(ctx, stdin)
}

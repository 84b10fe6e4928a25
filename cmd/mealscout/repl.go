package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jonwraymond/mealscout/pipeline"
	"github.com/jonwraymond/mealscout/recipe"
)

const helpText = `Commands:
  areas              list areas
  area <name>        browse an area
  exclude [term]     hide recipes containing an ingredient (no term clears)
  show <n|name>      show a recipe
  status             cache, catalog and last run summary
  help               this text
  quit               exit`

// repl reads commands from in and drives the session.
type repl struct {
	app       *app
	session   *pipeline.Session
	presenter *textPresenter
	out       io.Writer
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	r.prompt()
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		if !r.exec(ctx, scanner.Text()) {
			return nil
		}
		r.prompt()
	}
	return scanner.Err()
}

func (r *repl) prompt() {
	fmt.Fprint(r.out, "mealscout> ")
}

// exec runs one command line and reports whether to keep going.
func (r *repl) exec(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "areas":
		r.session.LoadRegions(ctx)
	case "area":
		if arg == "" {
			fmt.Fprintln(r.out, "usage: area <name>")
			break
		}
		r.session.SelectRegion(recipe.Region(arg))
		r.session.Wait()
	case "exclude":
		r.session.SetExclusion(arg)
		r.session.Wait()
	case "show":
		if arg == "" {
			fmt.Fprintln(r.out, "usage: show <n|name>")
			break
		}
		summary, ok := r.presenter.card(arg)
		if !ok {
			summary = recipe.Summary{Name: arg}
		}
		r.session.OpenDetail(ctx, summary)
	case "status":
		r.status(ctx)
	case "help", "?":
		fmt.Fprintln(r.out, helpText)
	case "quit", "exit":
		return false
	default:
		fmt.Fprintf(r.out, "unknown command %q (try help)\n", cmd)
	}
	return true
}

func (r *repl) status(ctx context.Context) {
	stats := r.app.cache.Stats()
	fmt.Fprintf(r.out, "cache: %d entries (%d negative), %d hits, %d misses\n",
		stats.Entries, stats.Negative, stats.Hits, stats.Misses)

	if r.app.breaker != nil {
		fmt.Fprintf(r.out, "catalog breaker: %s\n", r.app.breaker.State())
	}

	results := r.app.health.CheckAll(ctx)
	for _, name := range r.app.health.CheckerNames() {
		res := results[name]
		fmt.Fprintf(r.out, "health %s: %s %s\n", name, res.Status, res.Message)
	}

	last := r.session.Last()
	if last.Generation == 0 {
		return
	}
	fmt.Fprintf(r.out, "last run: area=%q exclude=%q shown=%d/%d excluded=%d unresolved=%d\n",
		last.Region, last.Term, len(last.Shown), last.TotalCandidates, last.Excluded, last.Unresolved)
}

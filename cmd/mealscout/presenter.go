package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/jonwraymond/mealscout/recipe"
)

// textPresenter renders session output as plain text.
type textPresenter struct {
	mu    sync.Mutex
	w     io.Writer
	cards []recipe.Summary
}

func newTextPresenter(w io.Writer) *textPresenter {
	return &textPresenter{w: w}
}

func (p *textPresenter) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cards = nil
}

func (p *textPresenter) ShowRegions(regions []recipe.Region) {
	if len(regions) == 0 {
		fmt.Fprintln(p.w, "No areas available.")
		return
	}
	names := make([]string, len(regions))
	for i, r := range regions {
		names[i] = r.String()
	}
	fmt.Fprintf(p.w, "Areas: %s\n", strings.Join(names, ", "))
}

func (p *textPresenter) AddCard(s recipe.Summary) {
	p.mu.Lock()
	p.cards = append(p.cards, s)
	n := len(p.cards)
	p.mu.Unlock()
	fmt.Fprintf(p.w, "%3d. %s\n", n, s.Name)
}

func (p *textPresenter) ShowEmpty(message string) {
	fmt.Fprintln(p.w, message)
}

func (p *textPresenter) ShowDetail(d *recipe.Detail) {
	fmt.Fprintf(p.w, "\n%s\n%s\n", d.Name, strings.Repeat("=", len(d.Name)))
	fmt.Fprintf(p.w, "Category: %s | Area: %s\n", orNA(d.Category), orNA(d.Area))
	if len(d.Tags) > 0 {
		fmt.Fprintf(p.w, "Tags: %s\n", strings.Join(d.Tags, ", "))
	}
	fmt.Fprintln(p.w, "\nIngredients:")
	for _, line := range d.IngredientLines() {
		fmt.Fprintf(p.w, "  - %s\n", line)
	}
	if d.Instructions != "" {
		fmt.Fprintf(p.w, "\nInstructions:\n%s\n", strings.TrimSpace(d.Instructions))
	}
	if d.YouTubeURL != "" {
		fmt.Fprintf(p.w, "\nVideo: %s\n", d.YouTubeURL)
	}
	if d.SourceURL != "" {
		fmt.Fprintf(p.w, "Source: %s\n", d.SourceURL)
	}
	fmt.Fprintln(p.w)
}

func (p *textPresenter) ShowError(message string) {
	fmt.Fprintf(p.w, "error: %s\n", message)
}

// card returns the n-th card (1-based) or the card whose name matches,
// ignoring case.
func (p *textPresenter) card(ref string) (recipe.Summary, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(p.cards) {
			return p.cards[n-1], true
		}
		return recipe.Summary{}, false
	}
	for _, c := range p.cards {
		if strings.EqualFold(c.Name, ref) {
			return c, true
		}
	}
	return recipe.Summary{}, false
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// Package prompt implements interactive tag entry for `oktags add -i`.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/jpl-au/oktags/internal/codec"
	"github.com/jpl-au/oktags/internal/validate"
)

var (
	// ErrNotInteractive is returned when stdin or stdout is not a terminal.
	ErrNotInteractive = errors.New("interactive mode requires a terminal")

	// ErrAborted is returned when the user cancels the prompt.
	ErrAborted = errors.New("aborted")
)

// Interactive reports whether both stdin and stdout are terminals.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// ask runs a single prompt and returns the raw answer. Replaced in tests.
var ask = func(title, description string, suggestions []string) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		Description(description).
		Suggestions(suggestions).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			return validate.Tags(codec.ParseList(s))
		}).
		Value(&value)

	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", err
	}
	return value, nil
}

// Tags asks for tags to add to file, one per prompt, until an empty answer.
// Known tags are offered as completions; tags already chosen are not offered
// again. The result is a comma-separated list ready for the rewrite engine.
func Tags(file string, known []string) (string, error) {
	if !Interactive() {
		return "", ErrNotInteractive
	}
	return collect(file, known)
}

func collect(file string, known []string) (string, error) {
	var chosen []string
	for {
		title := fmt.Sprintf("Tag for %s", file)
		desc := "Press enter on an empty line to finish."
		if len(chosen) > 0 {
			desc = fmt.Sprintf("So far: %s. %s", strings.Join(chosen, ", "), desc)
		}

		answer, err := ask(title, desc, remaining(known, chosen))
		if err != nil {
			return "", err
		}
		tags := codec.ParseList(answer)
		if len(tags) == 0 {
			break
		}
		for _, t := range tags {
			if !slices.Contains(chosen, t) {
				chosen = append(chosen, t)
			}
		}
	}
	return strings.Join(chosen, ","), nil
}

// remaining returns the known tags not yet chosen.
func remaining(known, chosen []string) []string {
	out := make([]string, 0, len(known))
	for _, t := range known {
		if !slices.Contains(chosen, t) {
			out = append(out, t)
		}
	}
	return out
}

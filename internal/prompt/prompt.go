package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spacesedan/subreddit-insights/internal/models"
	"github.com/spacesedan/subreddit-insights/internal/pipeline"
)

var ErrNoInput = errors.New("input closed before all questions were answered")

type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Ask walks through the run questions. The time window is only asked for listings
// that take one, and a second subreddit only when the answer to the comparison
// question is yes. Unrecognized answers are asked again.
func (p *Prompter) Ask() (pipeline.Request, error) {
	var req pipeline.Request

	sub, err := p.subreddit()
	if err != nil {
		return req, err
	}
	req.Subreddit = sub

	p.printf("What type of post do you want?\n")
	req.Listing, err = choose(p, "Enter a post type: ", models.ListingTypes, models.ParseListingType)
	if err != nil {
		return req, err
	}

	if req.Listing.TakesTimeWindow() {
		p.printf("What time frame of data do you want?\n")
		req.Window, err = choose(p, "Enter a timeframe: ", models.TimeWindows, models.ParseTimeWindow)
		if err != nil {
			return req, err
		}
	}

	answer, err := p.ask("Would you like to compare this info to another subreddit? ")
	if err != nil {
		return req, err
	}
	if a := strings.ToLower(answer); a == "yes" || a == "y" {
		second, err := p.subreddit()
		if err != nil {
			return req, err
		}
		req.Secondary = &second
	}

	return req, nil
}

func (p *Prompter) subreddit() (string, error) {
	for {
		answer, err := p.ask("Which subreddit would you like to do? r/")
		if err != nil {
			return "", err
		}
		name := strings.TrimPrefix(strings.ToLower(answer), "r/")
		if name != "" {
			return name, nil
		}
	}
}

// choose lists options numbered from 1 and accepts either the number or the name.
func choose[T ~string](p *Prompter, question string, options []T, parse func(string) (T, error)) (T, error) {
	for i, o := range options {
		p.printf("%d. %s\n", i+1, titleCase(string(o)))
	}

	for {
		answer, err := p.ask(question)
		if err != nil {
			var zero T
			return zero, err
		}

		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		if v, err := parse(answer); err == nil {
			return v, nil
		}
		p.printf("%q is not one of the options\n", answer)
	}
}

func (p *Prompter) ask(question string) (string, error) {
	p.printf("%s", question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		return "", ErrNoInput
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *Prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

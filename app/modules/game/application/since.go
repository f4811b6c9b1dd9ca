package gameservice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrInvalidSince is returned when a history filter cannot be understood.
var ErrInvalidSince = errors.New("could not understand the date filter")

// SinceParser turns history filters such as "2024-03-01", "yesterday" or
// "3 weeks ago" into a start time.
type SinceParser struct {
	w *when.Parser
}

// NewSinceParser creates a parser with the English and numeric date rules.
func NewSinceParser() *SinceParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &SinceParser{w: w}
}

// Parse resolves input relative to now. Empty input means no filter and
// returns the zero time. Matches land on the start of their day.
func (p *SinceParser) Parse(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return time.Time{}, nil
	}

	if t, err := time.ParseInLocation(time.DateOnly, input, now.Location()); err == nil {
		return t, nil
	}

	r, err := p.w.Parse(input, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidSince, input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSince, input)
	}

	y, m, d := r.Time.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.Time.Location()), nil
}

// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package checker

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/ajroetker/go-tilecheck/hwy/contrib/matmul"
)

// EndToEnd is the section every other section's percentage is taken of.
const EndToEnd = "end-to-end"

// Sections timed by Profile, in the order they run.
const (
	SectionGenerate = "generate"
	SectionMultiply = "multiply"
	SectionAdd      = "add"
	SectionDisplay  = "display"
)

var (
	// ErrNotStarted is returned by Stop for a section with no pending Start.
	ErrNotStarted = errors.New("checker: section not started")

	// ErrNoEndToEnd is returned when percentages are asked for before the
	// EndToEnd section was ever timed.
	ErrNoEndToEnd = errors.New("checker: no end-to-end section")
)

// Section is the accumulated time of one named section.
type Section struct {
	Name  string
	Total time.Duration
	Calls int
}

// Avg returns the mean time per call, or 0 before the first Stop.
func (s Section) Avg() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}

// SectionTimer accumulates wall time per named section. Sections may nest
// and repeat; they are reported in the order they were first started.
//
// A nil *SectionTimer is valid for Time, which then just calls fn.
type SectionTimer struct {
	mu       sync.Mutex
	now      func() time.Time
	order    []string
	started  map[string]time.Time
	sections map[string]*Section
}

// NewSectionTimer returns an empty timer.
func NewSectionTimer() *SectionTimer {
	return &SectionTimer{
		now:      time.Now,
		started:  make(map[string]time.Time),
		sections: make(map[string]*Section),
	}
}

// Start starts (or restarts) section name.
func (t *SectionTimer) Start(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.sections[name]; !ok {
		t.sections[name] = &Section{Name: name}
		t.order = append(t.order, name)
	}
	t.started[name] = t.now()
}

// Stop adds the time since the matching Start to section name and counts
// one call.
func (t *SectionTimer) Stop(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	start, ok := t.started[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotStarted, name)
	}
	delete(t.started, name)

	s := t.sections[name]
	s.Total += t.now().Sub(start)
	s.Calls++
	return nil
}

// Time runs fn as one call of section name and returns fn's error. The
// call is counted even when fn fails.
func (t *SectionTimer) Time(name string, fn func() error) error {
	if t == nil {
		return fn()
	}
	t.Start(name)
	err := fn()
	_ = t.Stop(name) // started above
	return err
}

// Sections returns a snapshot of every section in first-start order.
func (t *SectionTimer) Sections() []Section {
	t.mu.Lock()
	defer t.mu.Unlock()

	return lo.Map(t.order, func(name string, _ int) Section { return *t.sections[name] })
}

// Percent returns the share of the EndToEnd total spent in s.
func (t *SectionTimer) Percent(s Section) (float64, error) {
	t.mu.Lock()
	e2e, ok := t.sections[EndToEnd]
	t.mu.Unlock()

	if !ok || e2e.Calls == 0 {
		return 0, ErrNoEndToEnd
	}
	if e2e.Total == 0 {
		return 0, nil
	}
	return 100 * float64(s.Total) / float64(e2e.Total), nil
}

// Column widths of the WriteTo table.
const (
	nameWidth    = 20
	totalWidth   = 20
	callsWidth   = 20
	avgWidth     = 20
	percentWidth = 10
	tableWidth   = nameWidth + totalWidth + callsWidth + avgWidth + percentWidth
)

// WriteTo writes one line per section with its total time, call count,
// average and share of EndToEnd, between two rules. It fails with
// ErrNoEndToEnd, writing nothing, if EndToEnd was never timed.
func (t *SectionTimer) WriteTo(w io.Writer) (int64, error) {
	sections := t.Sections()
	percents := make([]float64, len(sections))
	for i, s := range sections {
		p, err := t.Percent(s)
		if err != nil {
			return 0, err
		}
		percents[i] = p
	}

	var sb strings.Builder
	rule := strings.Repeat("-", tableWidth) + "\n"
	fmt.Fprintf(&sb, "%-*s%-*s%-*s%-*s%-*s\n",
		nameWidth, "Name", totalWidth, "Total Time", callsWidth, "Calls",
		avgWidth, "Avg Time", percentWidth, "Percent")
	sb.WriteString(rule)
	for i, s := range sections {
		fmt.Fprintf(&sb, "%-*s%-*s%-*d%-*s%-*s\n",
			nameWidth, s.Name, totalWidth, FormatDuration(s.Total), callsWidth, s.Calls,
			avgWidth, FormatDuration(s.Avg()), percentWidth, fmt.Sprintf("%.1f%%", percents[i]))
	}
	sb.WriteString(rule)

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// FormatDuration renders d in the largest of ns, us, ms and s that keeps
// the value at or above 1, with three decimals above ns.
func FormatDuration(d time.Duration) string {
	switch ns := d.Nanoseconds(); {
	case ns < 1_000:
		return fmt.Sprintf("%d ns", ns)
	case ns < 1_000_000:
		return fmt.Sprintf("%.3f us", float64(ns)/1e3)
	case ns < 1_000_000_000:
		return fmt.Sprintf("%.3f ms", float64(ns)/1e6)
	default:
		return fmt.Sprintf("%.3f s", float64(ns)/1e9)
	}
}

// Profile computes p runs times with kernel and returns the per-step
// timings: every run is one EndToEnd call wrapping generate, multiply, add
// and a display into io.Discard.
func (p Problem) Profile(kernel matmul.Kernel, runs int) (*SectionTimer, error) {
	if runs <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRuns, runs)
	}

	timer := NewSectionTimer()
	for i := range runs {
		timer.Start(EndToEnd)
		result, err := p.compute(kernel, timer)
		if err == nil {
			err = timer.Time(SectionDisplay, func() error {
				_, err := result.WriteTo(io.Discard)
				return err
			})
		}
		_ = timer.Stop(EndToEnd)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
	}
	return timer, nil
}

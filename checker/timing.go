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
	"time"
)

// ErrInvalidRuns is returned by Measure for a non-positive run count.
var ErrInvalidRuns = errors.New("checker: runs must be > 0")

// Timing is the wall time of repeated calls.
type Timing struct {
	Runs  int
	Total time.Duration
	Avg   time.Duration
}

// String returns "total: <Total>, avg: <Avg> over <Runs> runs".
func (t Timing) String() string {
	return fmt.Sprintf("total: %v, avg: %v over %d runs", t.Total, t.Avg, t.Runs)
}

// Measure calls fn runs times and returns the total and average wall time.
// It stops at the first error fn returns.
func Measure(runs int, fn func() error) (Timing, error) {
	if runs <= 0 {
		return Timing{}, fmt.Errorf("%w: got %d", ErrInvalidRuns, runs)
	}

	start := time.Now()
	for i := range runs {
		if err := fn(); err != nil {
			return Timing{}, fmt.Errorf("run %d: %w", i, err)
		}
	}
	total := time.Since(start)

	return Timing{Runs: runs, Total: total, Avg: total / time.Duration(runs)}, nil
}

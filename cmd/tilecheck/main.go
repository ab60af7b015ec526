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

// Command tilecheck prints C + A×B for the fixed 16×64 · 64×16 integer
// problem and checks every matmul kernel against it.
//
// Usage:
//
//	tilecheck
//
// The 16×16 result goes to stdout, one row per line. The dispatch level,
// the encoded AMX tile config, the per-kernel verification summary and a
// per-step timing table go to stderr. The exit code is 1 if
// any kernel disagrees with the reference.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ajroetker/go-tilecheck/checker"
	"github.com/ajroetker/go-tilecheck/hwy"
	"github.com/ajroetker/go-tilecheck/hwy/contrib/matmul"
)

// timingRuns is how many times the auto-selected kernel is timed.
const timingRuns = 1000

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fmt.Fprintf(os.Stderr, "Dispatch level: %s\n", hwy.CurrentName())
	if err := hwy.RequestAMX(); err != nil {
		fmt.Fprintf(os.Stderr, "AMX: %v\n", err)
	}
	tileCfg := matmul.DefaultTileConfig().Bytes()
	if _, err := matmul.LoadTileConfig(tileCfg[:]); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Tile config: % x\n", tileCfg[:])

	if _, err := checker.Run(os.Stdout); err != nil {
		return err
	}

	report, err := checker.Verify(context.Background())
	if report != nil {
		for _, res := range report.Results {
			status := "ok"
			if res.Err != nil {
				status = res.Err.Error()
			}
			native := ""
			if res.Native {
				native = " (native)"
			}
			fmt.Fprintf(os.Stderr, "  %-14s %-6s %10v  %s%s\n", res.Kernel, res.Level, res.Elapsed, status, native)
		}
	}
	if err != nil {
		return err
	}

	p := checker.Fixed
	kernel := matmul.Auto(nil, p.M, p.N, p.K)
	timing, err := checker.Measure(timingRuns, func() error {
		_, err := p.Compute(kernel)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%s kernel on %s: %s\n", kernel.Name, p, timing)

	timer, err := p.Profile(kernel, timingRuns)
	if err != nil {
		return err
	}
	_, err = timer.WriteTo(os.Stderr)
	return err
}

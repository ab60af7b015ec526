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

package hwy

import (
	"os"
	"strconv"
	"sync"
)

// DispatchLevel represents the integer matrix-multiply hardware being targeted.
type DispatchLevel int

const (
	// DispatchScalar indicates no matrix hardware, pure Go triple loops.
	DispatchScalar DispatchLevel = iota

	// DispatchVNNI indicates x86 VNNI instructions (AVX512-VNNI or AVX-VNNI).
	// VNNI computes 4-way byte dot products into 32-bit lanes.
	DispatchVNNI

	// DispatchAMX indicates x86 AMX tile instructions (Sapphire Rapids+).
	// AMX provides 8 tile registers of up to 16 rows x 64 bytes and the
	// TDPB* family of tile dot products.
	DispatchAMX

	// DispatchI8MM indicates ARM Int8 matrix multiply (SMMLA/UMMLA).
	// Each instruction multiplies a 2x8 by an 8x2 byte block into 2x2 int32.
	DispatchI8MM

	// DispatchSME indicates ARM SME instructions (scalable matrix).
	DispatchSME
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchVNNI:
		return "vnni"
	case DispatchAMX:
		return "amx"
	case DispatchI8MM:
		return "i8mm"
	case DispatchSME:
		return "sme"
	default:
		return "unknown"
	}
}

// currentLevel is the detected level for this runtime.
// Set by detectCPUFeatures in dispatch_*.go files.
var currentLevel DispatchLevel

// Per-level capability flags, set by detectCPUFeatures in dispatch_*.go files.
var (
	hasVNNI bool
	hasAMX  bool
	hasI8MM bool
)

// detectOnce guards detection. It runs on first use rather than at import
// time because AMX detection asks the kernel for the tile data permission.
var detectOnce sync.Once

func detect() {
	detectOnce.Do(func() {
		if NoSimdEnv() {
			setScalarMode()
			return
		}
		detectCPUFeatures()
	})
}

// CurrentLevel returns the best dispatch level available on this machine.
// The first call detects CPU features and, on AMX hardware, requests the
// tile data permission.
func CurrentLevel() DispatchLevel {
	detect()
	return currentLevel
}

// CurrentName returns a human-readable name for the current level.
// For example: "amx", "vnni", "scalar".
func CurrentName() string {
	return CurrentLevel().String()
}

// Supports reports whether the hardware behind level is usable.
// DispatchScalar is always supported.
func Supports(level DispatchLevel) bool {
	detect()
	switch level {
	case DispatchScalar:
		return true
	case DispatchVNNI:
		return hasVNNI
	case DispatchAMX:
		return hasAMX
	case DispatchI8MM:
		return hasI8MM
	case DispatchSME:
		return HasSME()
	default:
		return false
	}
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// When set, every accelerated level is disabled and dispatch falls back to
// scalar regardless of CPU capabilities. This is useful for testing.
func NoSimdEnv() bool {
	return envBool("HWY_NO_SIMD")
}

// NoAMXEnv checks if the HWY_NO_AMX environment variable is set.
// AMX needs a kernel permission request; this skips it entirely.
func NoAMXEnv() bool {
	return envBool("HWY_NO_AMX")
}

func envBool(name string) bool {
	val := os.Getenv(name)
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

func setScalarMode() {
	currentLevel = DispatchScalar
	hasVNNI = false
	hasAMX = false
	hasI8MM = false
}

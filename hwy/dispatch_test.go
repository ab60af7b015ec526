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
	"errors"
	"sync"
	"testing"
)

// redetect forgets the detected level so the next call detects again.
func redetect() {
	detectOnce = sync.Once{}
}

func TestDispatchLevelString(t *testing.T) {
	tests := []struct {
		level DispatchLevel
		want  string
	}{
		{DispatchScalar, "scalar"},
		{DispatchVNNI, "vnni"},
		{DispatchAMX, "amx"},
		{DispatchI8MM, "i8mm"},
		{DispatchSME, "sme"},
		{DispatchLevel(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("DispatchLevel(%d).String() = %q, want %q", int(tt.level), got, tt.want)
		}
	}
}

func TestCurrentLevelIsSupported(t *testing.T) {
	t.Logf("Dispatch level: %s", CurrentName())

	if !Supports(DispatchScalar) {
		t.Error("Supports(DispatchScalar) = false, want true")
	}
	if !Supports(CurrentLevel()) {
		t.Errorf("Supports(CurrentLevel()=%s) = false", CurrentName())
	}
	if CurrentName() != CurrentLevel().String() {
		t.Errorf("CurrentName() = %q, want %q", CurrentName(), CurrentLevel().String())
	}
	if Supports(DispatchLevel(-1)) {
		t.Error("Supports(-1) = true, want false")
	}
}

func TestNoSimdEnv(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Setenv("HWY_NO_SIMD", tt.value)
		if got := NoSimdEnv(); got != tt.want {
			t.Errorf("HWY_NO_SIMD=%q: NoSimdEnv() = %v, want %v", tt.value, got, tt.want)
		}
	}

	t.Setenv("HWY_NO_AMX", "1")
	if !NoAMXEnv() {
		t.Error("HWY_NO_AMX=1: NoAMXEnv() = false, want true")
	}
}

func TestRequestAMX(t *testing.T) {
	err := RequestAMX()
	if err != nil && !errors.Is(err, ErrAMXUnavailable) {
		t.Fatalf("RequestAMX() = %v, want nil or ErrAMXUnavailable", err)
	}
	t.Logf("RequestAMX: %v", err)

	if err == nil && !Supports(DispatchAMX) && !NoAMXEnv() && !NoSimdEnv() {
		t.Error("AMX granted but not reported by Supports")
	}
}

func TestDetectionReadsEnvOnFirstUse(t *testing.T) {
	// Registered before Setenv, so it runs after the variable is restored.
	t.Cleanup(redetect)

	redetect()
	t.Setenv("HWY_NO_SIMD", "1")

	if got := CurrentLevel(); got != DispatchScalar {
		t.Errorf("HWY_NO_SIMD=1 set before first use: CurrentLevel() = %s, want scalar", got)
	}
	for _, level := range []DispatchLevel{DispatchVNNI, DispatchAMX, DispatchI8MM, DispatchSME} {
		if Supports(level) {
			t.Errorf("HWY_NO_SIMD=1: Supports(%s) = true", level)
		}
	}
}

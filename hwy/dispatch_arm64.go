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

//go:build arm64

package hwy

import "golang.org/x/sys/cpu"

func detectCPUFeatures() {
	// On Linux x/sys/cpu reads HWCAP2; on macOS it reports nothing useful
	// for I8MM, so fall back to sysctl there.
	hasI8MM = cpu.ARM64.HasI8MM || sysctlFeature("hw.optional.arm.FEAT_I8MM")

	switch {
	case HasSME():
		currentLevel = DispatchSME
	case hasI8MM:
		currentLevel = DispatchI8MM
	default:
		currentLevel = DispatchScalar
	}
}

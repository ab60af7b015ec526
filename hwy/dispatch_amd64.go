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

//go:build amd64

package hwy

import "golang.org/x/sys/cpu"

func detectCPUFeatures() {
	// VNNI comes as AVX512-VNNI (Cascade Lake+), AVX-VNNI (Alder Lake+) and
	// AVX-VNNI-INT8 (Sierra Forest+, adds unsigned-by-unsigned). All of them
	// share the byte quad dot product layout the VNNI kernel models.
	hasVNNI = cpu.X86.HasAVX512VNNI || cpu.X86.HasAVXVNNI || cpu.X86.HasAVXVNNIInt8

	// AMX needs both CPU support and an arch_prctl grant for the tile data
	// state component, otherwise the first tile load faults.
	hasAMX = !NoAMXEnv() && RequestAMX() == nil

	switch {
	case hasAMX:
		currentLevel = DispatchAMX
	case hasVNNI:
		currentLevel = DispatchVNNI
	default:
		currentLevel = DispatchScalar
	}
}

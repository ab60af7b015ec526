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
	"fmt"

	"golang.org/x/sys/cpu"
)

// ErrAMXUnavailable is returned when AMX tiles cannot be used, either
// because the CPU lacks AMX-TILE/AMX-INT8 or the OS refused the request.
var ErrAMXUnavailable = errors.New("hwy: AMX unavailable")

// RequestAMX asks the operating system for permission to use the AMX tile
// data state. The grant is per-process and sticky, so calling it again after
// a success is cheap.
func RequestAMX() error {
	if !cpu.X86.HasAMXTile || !cpu.X86.HasAMXInt8 {
		return fmt.Errorf("%w: cpu lacks amx-tile/amx-int8", ErrAMXUnavailable)
	}
	return requestAMX()
}

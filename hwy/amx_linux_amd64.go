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

//go:build linux && amd64

package hwy

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// XSAVE state components and arch_prctl codes from asm/prctl.h.
const (
	xfeatureXTileData     = 18
	xfeatureMaskXTileData = 1 << xfeatureXTileData

	archGetXCompPerm = 0x1022
	archReqXCompPerm = 0x1023
)

// xcompPerm returns the permitted XSAVE feature bitmask for this process.
func xcompPerm() (uint64, error) {
	var bitmask uint64
	_, _, errno := unix.Syscall(unix.SYS_ARCH_PRCTL, archGetXCompPerm, uintptr(unsafe.Pointer(&bitmask)), 0)
	if errno != 0 {
		return 0, errno
	}
	return bitmask, nil
}

func requestAMX() error {
	bitmask, err := xcompPerm()
	if err != nil {
		return fmt.Errorf("%w: ARCH_GET_XCOMP_PERM: %w", ErrAMXUnavailable, err)
	}
	if bitmask&xfeatureMaskXTileData != 0 {
		return nil
	}

	if _, _, errno := unix.Syscall(unix.SYS_ARCH_PRCTL, archReqXCompPerm, xfeatureXTileData, 0); errno != 0 {
		return fmt.Errorf("%w: ARCH_REQ_XCOMP_PERM: %w", ErrAMXUnavailable, errno)
	}

	// The request can succeed without the bit sticking on kernels that
	// gate XTILEDATA behind a sysctl, so read it back.
	bitmask, err = xcompPerm()
	if err != nil {
		return fmt.Errorf("%w: ARCH_GET_XCOMP_PERM: %w", ErrAMXUnavailable, err)
	}
	if bitmask&xfeatureMaskXTileData == 0 {
		return fmt.Errorf("%w: XTILEDATA not granted", ErrAMXUnavailable)
	}
	return nil
}

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

// Package hwy detects the integer matrix-multiply hardware available at
// runtime and exposes the selected dispatch level.
//
// The matmul kernels in hwy/contrib/matmul are written against the data
// layouts of the corresponding instructions (AMX tiles, VNNI quads, I8MM
// 2x8 blocks). The dispatch level reported here decides which of them is
// used by default:
//
//	fmt.Printf("Dispatch: %s\n", hwy.CurrentName())
//	if hwy.Supports(hwy.DispatchAMX) {
//	    // tile kernel matches the hardware path
//	}
package hwy

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

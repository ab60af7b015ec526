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

package matrix

import (
	"fmt"
	"io"
	"strings"
)

// ColumnWidth is the minimum width each element is right-aligned to.
const ColumnWidth = 8

// WriteTo writes m one row per line, each element right-aligned in a
// ColumnWidth-wide column. It implements io.WriterTo.
func (m *Matrix[T]) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, m.String())
	return int64(n), err
}

// String renders m the way WriteTo does.
func (m *Matrix[T]) String() string {
	var sb strings.Builder
	sb.Grow(m.rows * (m.cols*ColumnWidth + 1))

	var buf []byte
	for i := range m.rows {
		for _, v := range m.Row(i) {
			buf = fmt.Append(buf[:0], v)
			for pad := len(buf); pad < ColumnWidth; pad++ {
				sb.WriteByte(' ')
			}
			sb.Write(buf)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

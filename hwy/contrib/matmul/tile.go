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

package matmul

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrTileConfig is returned when a TileConfig cannot describe the tiles a
// kernel needs.
var ErrTileConfig = errors.New("matmul: invalid tile config")

// AMX palette 1 limits.
const (
	MaxTiles     = 8
	MaxTileRows  = 16
	MaxTileColsB = 64

	// TileConfigSize is the size of the LDTILECFG memory operand.
	TileConfigSize = 64
)

// Tile register roles used by TileMatMulAdd.
const (
	tileA = 0
	tileB = 1
	tileC = 2
)

// TileConfig mirrors the 64-byte LDTILECFG record: a palette, the row to
// restart from after an interrupt, and per-tile shapes given as a row count
// and a row width in bytes.
type TileConfig struct {
	PaletteID uint8
	StartRow  uint8
	ColsB     [MaxTiles]uint16
	Rows      [MaxTiles]uint8
}

// DefaultTileConfig returns palette 1 with tiles 0-2 at their maximum shape
// of 16 rows by 64 bytes: A as 16×64 bytes, B as 16 quad rows × 16 columns,
// C as 16×16 int32.
func DefaultTileConfig() TileConfig {
	cfg := TileConfig{PaletteID: 1}
	for _, t := range []int{tileA, tileB, tileC} {
		cfg.Rows[t] = MaxTileRows
		cfg.ColsB[t] = MaxTileColsB
	}
	return cfg
}

// Validate checks that tiles 0-2 are usable by TileMatMulAdd.
func (cfg TileConfig) Validate() error {
	if cfg.PaletteID != 1 {
		return fmt.Errorf("%w: palette %d, want 1", ErrTileConfig, cfg.PaletteID)
	}
	if cfg.StartRow != 0 {
		return fmt.Errorf("%w: start row %d, want 0", ErrTileConfig, cfg.StartRow)
	}
	for _, t := range []int{tileA, tileB, tileC} {
		rows, colsb := int(cfg.Rows[t]), int(cfg.ColsB[t])
		if rows < 1 || rows > MaxTileRows {
			return fmt.Errorf("%w: tile %d has %d rows, want 1..%d", ErrTileConfig, t, rows, MaxTileRows)
		}
		if colsb < VNNIGroup || colsb > MaxTileColsB || colsb%VNNIGroup != 0 {
			return fmt.Errorf("%w: tile %d has %d bytes per row, want a multiple of %d in %d..%d",
				ErrTileConfig, t, colsb, VNNIGroup, VNNIGroup, MaxTileColsB)
		}
	}
	return nil
}

// Bytes encodes cfg as the LDTILECFG memory operand:
//
//	byte 0      palette_id
//	byte 1      start_row
//	bytes 16-31 colsb[0..7], little-endian uint16
//	bytes 48-55 rows[0..7]
//
// Everything else is reserved and zero.
func (cfg TileConfig) Bytes() [TileConfigSize]byte {
	var buf [TileConfigSize]byte
	buf[0] = cfg.PaletteID
	buf[1] = cfg.StartRow
	for t := range MaxTiles {
		binary.LittleEndian.PutUint16(buf[16+2*t:], cfg.ColsB[t])
		buf[48+t] = cfg.Rows[t]
	}
	return buf
}

// LoadTileConfig is LDTILECFG: it decodes a TileConfigSize record laid
// out as in Bytes and checks it with Validate. Reserved bytes must be zero.
func LoadTileConfig(rec []byte) (TileConfig, error) {
	if len(rec) != TileConfigSize {
		return TileConfig{}, fmt.Errorf("%w: record is %d bytes, want %d", ErrTileConfig, len(rec), TileConfigSize)
	}
	for _, r := range [][2]int{{2, 16}, {32, 48}, {56, TileConfigSize}} {
		for i := r[0]; i < r[1]; i++ {
			if rec[i] != 0 {
				return TileConfig{}, fmt.Errorf("%w: reserved byte %d is %#x", ErrTileConfig, i, rec[i])
			}
		}
	}

	cfg := TileConfig{PaletteID: rec[0], StartRow: rec[1]}
	for t := range MaxTiles {
		cfg.ColsB[t] = binary.LittleEndian.Uint16(rec[16+2*t:])
		cfg.Rows[t] = rec[48+t]
	}
	if err := cfg.Validate(); err != nil {
		return TileConfig{}, err
	}
	return cfg, nil
}

// tile is one AMX tile register: up to 16 rows of 64 bytes. rows and colsb
// are the shape the current load configured.
type tile struct {
	rows, colsb int
	data        [MaxTileRows * MaxTileColsB]byte
}

// row returns the configured bytes of row r.
func (t *tile) row(r int) []byte {
	return t.data[r*MaxTileColsB : r*MaxTileColsB+t.colsb]
}

// loadBytes is TILELOADD: rows × colsb bytes from src starting at off with
// the given row stride. Only the first valid bytes of each row come from
// memory; the rest of the row is zeroed.
func (t *tile) loadBytes(src []byte, off, stride, rows, colsb, valid int) {
	t.rows, t.colsb = rows, colsb
	clear(t.data[:])
	n := min(colsb, valid)
	for r := range rows {
		from := off + r*stride
		copy(t.row(r)[:n], src[from:from+n])
	}
}

// loadInt32 loads a rows × cols block of int32 (the C accumulator).
func (t *tile) loadInt32(src []int32, off, stride, rows, cols int) {
	t.rows, t.colsb = rows, cols*4
	clear(t.data[:])
	for r := range rows {
		dst := t.row(r)
		for j, v := range src[off+r*stride : off+r*stride+cols] {
			binary.LittleEndian.PutUint32(dst[j*4:], uint32(v))
		}
	}
}

// storeInt32 is TILESTORED for an int32 accumulator tile.
func (t *tile) storeInt32(dst []int32, off, stride int) {
	cols := t.colsb / 4
	for r := range t.rows {
		src := t.row(r)
		out := dst[off+r*stride : off+r*stride+cols]
		for j := range out {
			out[j] = int32(binary.LittleEndian.Uint32(src[j*4:]))
		}
	}
}

// tileDPBUUD is TDPBUUD c, a, b: for every (m, n) of c, add the dot product
// of the unsigned byte quads of row m of a with quad n of each row of b.
//
//	c[m][n] += sum_q sum_t a[m][4q+t] * b[q][4n+t]
//
// The shape rules the hardware enforces are checked here and panic.
func tileDPBUUD(c, a, b *tile) {
	if a.rows != c.rows || b.colsb != c.colsb || a.colsb != b.rows*VNNIGroup {
		panic("matmul: tile shape mismatch")
	}

	quads := a.colsb / VNNIGroup
	cols := c.colsb / 4
	for m := range c.rows {
		aRow := a.row(m)
		cRow := c.row(m)
		for n := range cols {
			acc := int32(binary.LittleEndian.Uint32(cRow[n*4:]))
			for q := range quads {
				bQuad := b.row(q)[n*VNNIGroup : (n+1)*VNNIGroup]
				aQuad := aRow[q*VNNIGroup : (q+1)*VNNIGroup]
				for t := range VNNIGroup {
					acc += int32(aQuad[t]) * int32(bQuad[t])
				}
			}
			binary.LittleEndian.PutUint32(cRow[n*4:], uint32(acc))
		}
	}
}

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

package checker

import "github.com/ajroetker/go-tilecheck/hwy/contrib/matrix"

// Golden is the expected C + A×B for the Fixed problem.
var Golden = [RowsC][ColsC]int32{
	{0, 85344, 170688, 256032, 341376, 237765, 228249, 253158, 295152, 250446, 233280, 256659, 285138, 250887, 244686, 240780},
	{0, 87361, 174722, 262083, 349444, 244535, 234996, 260392, 303128, 257889, 240445, 264311, 293277, 258493, 252269, 248085},
	{0, 89378, 178756, 268134, 357512, 251305, 241743, 267626, 311104, 265332, 247610, 271963, 301416, 266099, 259852, 255390},
	{0, 91395, 182790, 274185, 365580, 258075, 248490, 274860, 319080, 272775, 254775, 279615, 309555, 273705, 267435, 262695},
	{0, 93412, 186824, 280236, 373648, 264845, 255237, 282094, 327056, 280218, 261940, 287267, 317694, 281311, 275018, 270000},
	{0, 95429, 190858, 286287, 381716, 271615, 261984, 289328, 335032, 287661, 269105, 294919, 325833, 288917, 282601, 277305},
	{0, 97446, 194892, 292338, 389784, 278385, 268731, 296562, 343008, 295104, 276270, 302571, 333972, 296523, 290184, 284610},
	{0, 99463, 198926, 298389, 397852, 285155, 275478, 303796, 350984, 302547, 283435, 310223, 342111, 304129, 297767, 291915},
	{0, 101480, 202960, 304440, 405920, 291925, 282225, 311030, 358960, 309990, 290600, 317875, 350250, 311735, 305350, 299220},
	{0, 103497, 206994, 310491, 413988, 298695, 288972, 318264, 366936, 317433, 297765, 325527, 358389, 319341, 312933, 306525},
	{0, 105514, 211028, 316542, 422056, 305465, 295719, 325498, 374912, 324876, 304930, 333179, 366528, 326947, 320516, 313830},
	{0, 107531, 215062, 322593, 430124, 312235, 302466, 332732, 382888, 332319, 312095, 340831, 374667, 334553, 328099, 321135},
	{0, 109548, 219096, 328644, 438192, 319005, 309213, 339966, 390864, 339762, 319260, 348483, 382806, 342159, 335682, 328440},
	{0, 111565, 223130, 334695, 446260, 325775, 315960, 347200, 398840, 347205, 326425, 356135, 390945, 349765, 343265, 335745},
	{0, 113582, 227164, 340746, 454328, 332545, 322707, 354434, 406816, 354648, 333590, 363787, 399084, 357371, 350848, 343050},
	{0, 115599, 231198, 346797, 462396, 339315, 329454, 361668, 414792, 362091, 340755, 371439, 407223, 364977, 358431, 350355},
}

// GoldenMatrix returns Golden as a Matrix.
func GoldenMatrix() *matrix.Matrix[int32] {
	m, err := matrix.Generate(RowsC, ColsC, func(i, j int) int32 { return Golden[i][j] })
	if err != nil {
		panic(err) // fixed positive dimensions
	}
	return m
}

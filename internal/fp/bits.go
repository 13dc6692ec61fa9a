/*
 * Copyright 2022 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package fp

import (
    `math`

    `github.com/x448/float16`
)

type _Format struct {
    bits uint
    mant uint
}

var _formats = map[Width]_Format {
    W16: { bits: 16, mant: 10 },
    W32: { bits: 32, mant: 23 },
    W64: { bits: 64, mant: 52 },
}

func format(w Width) _Format {
    if f, ok := _formats[w]; !ok {
        panic("fp: invalid width: " + w.String())
    } else {
        return f
    }
}

func (self _Format) sign() uint64 {
    return 1 << (self.bits - 1)
}

func (self _Format) mantmask() uint64 {
    return (1 << self.mant) - 1
}

func (self _Format) expmask() uint64 {
    return (self.sign() - 1) &^ self.mantmask()
}

// SignBit returns the sign bit of a w-wide value.
func SignBit(bits uint64, w Width) uint64 {
    return bits & format(w).sign()
}

// IsDenormal reports whether bits encode a nonzero subnormal value.
func IsDenormal(bits uint64, w Width) bool {
    f := format(w)
    return bits & f.expmask() == 0 && bits & f.mantmask() != 0
}

func IsZero(bits uint64, w Width) bool {
    return bits &^ format(w).sign() == 0
}

func IsNaN(bits uint64, w Width) bool {
    f := format(w)
    return bits & f.expmask() == f.expmask() && bits & f.mantmask() != 0
}

func IsInf(bits uint64, w Width) bool {
    f := format(w)
    return bits &^ f.sign() == f.expmask()
}

// IsFiniteNonZero reports whether bits encode a value that is neither zero,
// infinite nor NaN.
func IsFiniteNonZero(bits uint64, w Width) bool {
    f := format(w)
    return bits & f.expmask() != f.expmask() && !IsZero(bits, w)
}

// FlushDenormal replaces a denormal with a zero of the same sign. Any other
// value is returned unchanged.
func FlushDenormal(bits uint64, w Width) uint64 {
    if IsDenormal(bits, w) {
        return SignBit(bits, w)
    } else {
        return bits
    }
}

// HalfToFloat32 widens a half value. Every half is exactly representable as a
// float, so the conversion never rounds.
func HalfToFloat32(h uint16) float32 {
    return float16.Frombits(h).Float32()
}

// Float32ToHalf narrows with round-to-nearest-even.
func Float32ToHalf(v float32) uint16 {
    return float16.Fromfloat32(v).Bits()
}

// IsHalfDenormal reports whether h encodes a nonzero subnormal half.
func IsHalfDenormal(h uint16) bool {
    return IsDenormal(uint64(h), W16)
}

// Float64ToHalf narrows with a single round-to-nearest-even step. Going through
// float32 directly could round twice, so the intermediate is rounded to odd.
func Float64ToHalf(v float64) uint16 {
    return Float32ToHalf(roundToOdd32(v))
}

func roundToOdd32(v float64) float32 {
    f := float32(v)
    if math.IsNaN(v) || float64(f) == v {
        return f
    }

    /* truncate towards zero */
    if math.Abs(float64(f)) > math.Abs(v) {
        f = math.Nextafter32(f, 0)
    }

    /* set the sticky bit */
    return math.Float32frombits(math.Float32bits(f) | 1)
}

// ToFloat64 widens a w-wide value to float64 exactly.
func ToFloat64(bits uint64, w Width) float64 {
    switch w {
        case W16 : return float64(HalfToFloat32(uint16(bits)))
        case W32 : return float64(math.Float32frombits(uint32(bits)))
        case W64 : return math.Float64frombits(bits)
        default  : panic("fp: invalid width: " + w.String())
    }
}

// FromFloat64 rounds v to nearest-even at width w.
func FromFloat64(v float64, w Width) uint64 {
    switch w {
        case W16 : return uint64(Float64ToHalf(v))
        case W32 : return uint64(math.Float32bits(float32(v)))
        case W64 : return math.Float64bits(v)
        default  : panic("fp: invalid width: " + w.String())
    }
}

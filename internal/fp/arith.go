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
    `fmt`
    `math`

    `github.com/cloudwego/spvlower/ir`
)

// Binary evaluates a floating binary operator on two w-wide values with
// round-to-nearest-even, exactly as the operation would be rounded at that
// precision. Half precision is computed in single precision and rounded once,
// which is exact for + - * / since 24 >= 2*11 + 2.
func Binary(op ir.Opcode, x uint64, y uint64, w Width) uint64 {
    switch w {
        case W16: {
            a := HalfToFloat32(uint16(x))
            b := HalfToFloat32(uint16(y))
            return uint64(Float32ToHalf(binary32(op, a, b)))
        }
        case W32: {
            a := math.Float32frombits(uint32(x))
            b := math.Float32frombits(uint32(y))
            return uint64(math.Float32bits(binary32(op, a, b)))
        }
        case W64: {
            a := math.Float64frombits(x)
            b := math.Float64frombits(y)
            return math.Float64bits(binary64(op, a, b))
        }
        default: {
            panic("fp: invalid width: " + w.String())
        }
    }
}

func binary32(op ir.Opcode, x float32, y float32) float32 {
    switch op {
        case ir.OpFAdd : return float32(x + y)
        case ir.OpFSub : return float32(x - y)
        case ir.OpFMul : return float32(x * y)
        case ir.OpFDiv : return float32(x / y)
        case ir.OpFRem : return float32(math.Mod(float64(x), float64(y)))
        default        : panic(fmt.Sprintf("fp: invalid binary operator: %s", op))
    }
}

func binary64(op ir.Opcode, x float64, y float64) float64 {
    switch op {
        case ir.OpFAdd : return float64(x + y)
        case ir.OpFSub : return float64(x - y)
        case ir.OpFMul : return float64(x * y)
        case ir.OpFDiv : return float64(x / y)
        case ir.OpFRem : return math.Mod(x, y)
        default        : panic(fmt.Sprintf("fp: invalid binary operator: %s", op))
    }
}

// Neg flips the sign bit, leaving NaN payloads intact.
func Neg(x uint64, w Width) uint64 {
    return x ^ format(w).sign()
}

// Abs clears the sign bit.
func Abs(x uint64, w Width) uint64 {
    return x &^ format(w).sign()
}

// CopySign returns x with the sign of y.
func CopySign(x uint64, y uint64, w Width) uint64 {
    return Abs(x, w) | SignBit(y, w)
}

// Convert changes the width of a floating value: widening is exact, narrowing
// rounds to nearest-even.
func Convert(x uint64, from Width, to Width) uint64 {
    if from == to {
        return x
    }

    /* NaNs keep their sign and payload, and become quiet */
    if IsNaN(x, from) {
        return convertNaN(x, format(from), format(to))
    }

    /* everything else goes through float64 */
    return FromFloat64(ToFloat64(x, from), to)
}

// convertNaN aligns the payload to the top of the new mantissa, dropping low
// bits when narrowing.
func convertNaN(x uint64, from _Format, to _Format) uint64 {
    m := x & from.mantmask()
    if to.mant > from.mant {
        m <<= to.mant - from.mant
    } else {
        m >>= from.mant - to.mant
    }

    /* quiet bit and sign */
    r := to.expmask() | m | (to.mantmask() + 1) >> 1
    if x & from.sign() != 0 {
        r |= to.sign()
    }
    return r
}

// FromInt converts an integer to width w with round-to-nearest-even.
func FromInt(v int64, w Width) uint64 {
    switch w {
        case W16 : return uint64(Float32ToHalf(float32(v)))
        case W32 : return uint64(math.Float32bits(float32(v)))
        case W64 : return math.Float64bits(float64(v))
        default  : panic("fp: invalid width: " + w.String())
    }
}

// FromUint converts an unsigned integer to width w with round-to-nearest-even.
func FromUint(v uint64, w Width) uint64 {
    switch w {
        case W16 : return uint64(Float32ToHalf(float32(v)))
        case W32 : return uint64(math.Float32bits(float32(v)))
        case W64 : return math.Float64bits(float64(v))
        default  : panic("fp: invalid width: " + w.String())
    }
}

// Rounding functions are exact at any width, so they are evaluated in float64.
func round(x uint64, w Width, fn func(float64) float64) uint64 {
    if IsNaN(x, w) {
        return x
    } else {
        return FromFloat64(fn(ToFloat64(x, w)), w)
    }
}

func Floor(x uint64, w Width) uint64 { return round(x, w, math.Floor) }
func Ceil(x uint64, w Width) uint64  { return round(x, w, math.Ceil) }
func Trunc(x uint64, w Width) uint64 { return round(x, w, math.Trunc) }

// Sqrt is correctly rounded at every width: the float64 square root of a half
// or a float has enough guard bits to round once more without error.
func Sqrt(x uint64, w Width) uint64 {
    if IsNaN(x, w) {
        return x
    }

    /* narrow the result in two correctly-rounded steps for halves */
    v := math.Sqrt(ToFloat64(x, w))
    if w == W16 {
        return uint64(Float32ToHalf(float32(v)))
    } else {
        return FromFloat64(v, w)
    }
}

// Min implements IEEE minNum: a NaN operand yields the other operand.
func Min(x uint64, y uint64, w Width) uint64 {
    return minmax(x, y, w, true)
}

// Max implements IEEE maxNum: a NaN operand yields the other operand.
func Max(x uint64, y uint64, w Width) uint64 {
    return minmax(x, y, w, false)
}

func minmax(x uint64, y uint64, w Width, min bool) uint64 {
    if IsNaN(x, w) {
        return y
    } else if IsNaN(y, w) {
        return x
    }

    /* compare as float64, ties between zeros prefer the signed one for min */
    a, b := ToFloat64(x, w), ToFloat64(y, w)
    switch {
        case a < b  : if min { return x } else { return y }
        case a > b  : if min { return y } else { return x }
        case min    : return x | y
        default     : return x & y
    }
}

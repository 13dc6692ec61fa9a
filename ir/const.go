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

package ir

import (
    `fmt`
    `math`
    `strconv`
    `strings`

    `github.com/x448/float16`
)

// Const is an immutable literal. Every lane is stored as its raw bits, so NaN
// payloads and the sign of zero survive untouched.
type Const struct {
    Type Type
    Bits []uint64
}

func (self *Const) Lane(i int) uint64 {
    return self.Bits[i]
}

// IsZero follows the shader IR convention: a floating scalar is zero if it is
// either +0.0 or -0.0, a vector is zero only if it is the aggregate zero.
func (self *Const) IsZero() bool {
    if self.Type.IsVector() {
        for _, v := range self.Bits {
            if v != 0 {
                return false
            }
        }
        return true
    }

    /* scalar zeros, ignoring the sign for floats */
    switch self.Type.Elem {
        case Half   : return self.Bits[0] & 0x7fff == 0
        case Float  : return self.Bits[0] & 0x7fffffff == 0
        case Double : return self.Bits[0] & 0x7fffffffffffffff == 0
        default     : return self.Bits[0] == 0
    }
}

// Float returns lane i widened to float64, for floating constants only.
func (self *Const) Float(i int) float64 {
    switch self.Type.Elem {
        case Half   : return float64(float16.Frombits(uint16(self.Bits[i])).Float32())
        case Float  : return float64(math.Float32frombits(uint32(self.Bits[i])))
        case Double : return math.Float64frombits(self.Bits[i])
        default     : panic("ir: not a floating constant: " + self.Type.String())
    }
}

// Int returns lane i sign-extended to int64, for integer constants only.
func (self *Const) Int(i int) int64 {
    switch self.Type.Elem {
        case I1  : return -int64(self.Bits[i] & 1)
        case I16 : return int64(int16(self.Bits[i]))
        case I32 : return int64(int32(self.Bits[i]))
        case I64 : return int64(self.Bits[i])
        default  : panic("ir: not an integer constant: " + self.Type.String())
    }
}

func (self *Const) lane(i int) string {
    if self.Type.Elem == I1 {
        return strconv.FormatBool(self.Bits[i] != 0)
    } else if self.Type.IsInt() {
        return strconv.FormatInt(self.Int(i), 10)
    }

    /* keep the sign of zero visible */
    v := self.Float(i)
    if v == 0 && math.Signbit(v) {
        return "-0.0"
    }

    /* NaNs are printed with their raw bits */
    if math.IsNaN(v) {
        return fmt.Sprintf("0x%x", self.Bits[i])
    }

    /* ordinary values */
    if s := strconv.FormatFloat(v, 'g', -1, 64); strings.ContainsAny(s, ".eIN") {
        return s
    } else {
        return s + ".0"
    }
}

func (self *Const) String() string {
    if !self.Type.IsVector() {
        return self.lane(0)
    }

    /* all-zero vectors */
    if self.IsZero() {
        return "zeroinitializer"
    }

    /* dump every lane */
    ret := make([]string, len(self.Bits))
    for i := range self.Bits {
        ret[i] = fmt.Sprintf("%s %s", self.Type.Scalar(), self.lane(i))
    }

    /* join them together */
    return fmt.Sprintf("<%s>", strings.Join(ret, ", "))
}

type _ConstKey struct {
    t Type
    b string
}

func constkey(t Type, bits []uint64) _ConstKey {
    buf := make([]byte, 0, len(bits) * 8)
    for _, v := range bits {
        buf = strconv.AppendUint(buf, v, 16)
        buf = append(buf, ',')
    }
    return _ConstKey { t: t, b: string(buf) }
}

func lanemask(t Type) uint64 {
    if n := t.Bits(); n == 64 {
        return math.MaxUint64
    } else {
        return (1 << uint(n)) - 1
    }
}

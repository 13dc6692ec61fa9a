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
)

// Elem is the element kind of a scalar or vector type.
type Elem uint8

const (
    Void Elem = iota
    I1
    I16
    I32
    I64
    Half
    Float
    Double
)

func (self Elem) String() string {
    switch self {
        case Void   : return "void"
        case I1     : return "i1"
        case I16    : return "i16"
        case I32    : return "i32"
        case I64    : return "i64"
        case Half   : return "half"
        case Float  : return "float"
        case Double : return "double"
        default     : panic("unreachable")
    }
}

// Type is a scalar (Lanes == 0) or a fixed-width vector.
type Type struct {
    Elem  Elem
    Lanes uint8
}

var (
    TVoid   = Type { Elem: Void }
    TBool   = Type { Elem: I1 }
    TInt16  = Type { Elem: I16 }
    TInt32  = Type { Elem: I32 }
    TInt64  = Type { Elem: I64 }
    THalf   = Type { Elem: Half }
    TFloat  = Type { Elem: Float }
    TDouble = Type { Elem: Double }
)

func VectorOf(t Type, n int) Type {
    if t.IsVector() {
        panic("ir: vector of vector: " + t.String())
    } else if n < 2 || n > 16 {
        panic(fmt.Sprintf("ir: invalid vector width: %d", n))
    } else {
        return Type { Elem: t.Elem, Lanes: uint8(n) }
    }
}

func (self Type) IsVector() bool {
    return self.Lanes != 0
}

func (self Type) NumLanes() int {
    if self.Lanes == 0 {
        return 1
    } else {
        return int(self.Lanes)
    }
}

func (self Type) Scalar() Type {
    return Type { Elem: self.Elem }
}

func (self Type) IsVoid() bool {
    return self.Elem == Void
}

// IsFP reports whether the type is a floating scalar.
func (self Type) IsFP() bool {
    return !self.IsVector() && self.isfp()
}

// IsFPOrFPVector reports whether the type is a floating scalar or a vector of them.
func (self Type) IsFPOrFPVector() bool {
    return self.isfp()
}

func (self Type) IsInt() bool {
    switch self.Elem {
        case I1, I16, I32, I64 : return true
        default                : return false
    }
}

func (self Type) isfp() bool {
    switch self.Elem {
        case Half, Float, Double : return true
        default                  : return false
    }
}

// Bits is the width of a single lane.
func (self Type) Bits() int {
    switch self.Elem {
        case I1              : return 1
        case I16, Half       : return 16
        case I32, Float      : return 32
        case I64, Double     : return 64
        default              : return 0
    }
}

// Size is the width of the whole value, in bits.
func (self Type) Size() int {
    return self.Bits() * self.NumLanes()
}

func (self Type) String() string {
    if !self.IsVector() {
        return self.Elem.String()
    } else {
        return fmt.Sprintf("<%d x %s>", self.Lanes, self.Elem)
    }
}

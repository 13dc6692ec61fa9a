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
    `strings`

    `github.com/x448/float16`
)

// Decl is the signature of a function known to the module, either a body
// defined in this module or a runtime builtin resolved at link time.
type Decl struct {
    Name string
    Ret  Type
    Args []Type
}

func (self *Decl) String() string {
    args := make([]string, len(self.Args))
    for i, t := range self.Args {
        args[i] = t.String()
    }
    return fmt.Sprintf("declare %s @%s(%s)", self.Ret, self.Name, strings.Join(args, ", "))
}

// Same reports whether the declaration matches the given signature.
func (self *Decl) Same(ret Type, args []Type) bool {
    if self.Ret != ret || len(self.Args) != len(args) {
        return false
    }
    for i, t := range args {
        if self.Args[i] != t {
            return false
        }
    }
    return true
}

// Module owns the constant pool, the builtin declarations and every function.
type Module struct {
    Funcs  []*Func
    Decls  map[string]*Decl
    consts []*Const
    cindex map[_ConstKey]Value
}

func NewModule() *Module {
    return &Module {
        Decls  : make(map[string]*Decl),
        consts : []*Const { nil },
        cindex : make(map[_ConstKey]Value),
    }
}

func (self *Module) NewFunc(name string, ret Type, args ...Type) *Func {
    fn := &Func {
        Name   : name,
        Ret    : ret,
        Args   : args,
        Module : self,
        ins    : []*Instr { nil },
    }
    self.Funcs = append(self.Funcs, fn)
    return fn
}

// Declare adds a builtin declaration, or returns the existing one with the
// same name. The caller must check the signature of an existing declaration.
func (self *Module) Declare(name string, ret Type, args []Type) (*Decl, bool) {
    if d, ok := self.Decls[name]; ok {
        return d, true
    }

    /* create a new declaration */
    d := &Decl {
        Name : name,
        Ret  : ret,
        Args : append([]Type(nil), args...),
    }

    /* add to the declaration table */
    self.Decls[name] = d
    return d, false
}

func (self *Module) Lookup(name string) *Decl {
    return self.Decls[name]
}

// ConstBits interns a constant with raw lane bits.
func (self *Module) ConstBits(t Type, bits ...uint64) Value {
    if t.IsVoid() {
        panic("ir: void constant")
    } else if len(bits) != t.NumLanes() {
        panic(fmt.Sprintf("ir: %d lanes for constant of type %s", len(bits), t))
    }

    /* truncate every lane to its width */
    mask := lanemask(t)
    norm := make([]uint64, len(bits))
    for i, v := range bits {
        norm[i] = v & mask
    }

    /* check for existing constants */
    key := constkey(t, norm)
    if v, ok := self.cindex[key]; ok {
        return v
    }

    /* add to constant pool */
    v := mkvalue(K_const, len(self.consts))
    self.consts = append(self.consts, &Const { Type: t, Bits: norm })
    self.cindex[key] = v
    return v
}

// ConstFloat interns a floating constant, rounding each lane to the element width.
func (self *Module) ConstFloat(t Type, v ...float64) Value {
    bits := make([]uint64, len(v))
    for i, x := range v {
        switch t.Elem {
            case Half   : bits[i] = uint64(halfbits(x))
            case Float  : bits[i] = uint64(math.Float32bits(float32(x)))
            case Double : bits[i] = math.Float64bits(x)
            default     : panic("ir: not a floating type: " + t.String())
        }
    }
    return self.ConstBits(t, bits...)
}

func (self *Module) ConstInt(t Type, v ...int64) Value {
    if !t.IsInt() {
        panic("ir: not an integer type: " + t.String())
    }

    /* convert to raw bits */
    bits := make([]uint64, len(v))
    for i, x := range v {
        bits[i] = uint64(x)
    }
    return self.ConstBits(t, bits...)
}

func (self *Module) ConstZero(t Type) Value {
    return self.ConstBits(t, make([]uint64, t.NumLanes())...)
}

// Const returns the literal behind a constant handle.
func (self *Module) Const(v Value) *Const {
    if !v.IsConst() || v.Index() >= len(self.consts) {
        panic("ir: not a constant: " + v.String())
    } else {
        return self.consts[v.Index()]
    }
}

func (self *Module) String() string {
    buf := make([]string, 0, len(self.Decls) + len(self.Funcs))
    for _, name := range sortedkeys(self.Decls) {
        buf = append(buf, self.Decls[name].String())
    }
    for _, fn := range self.Funcs {
        buf = append(buf, fn.String())
    }
    return strings.Join(buf, "\n\n")
}

// halfbits rounds x to half once. The float32 intermediate is rounded to odd
// so that the final rounding to nearest-even sees the discarded bits.
func halfbits(x float64) uint16 {
    f := float32(x)
    if math.IsNaN(x) || float64(f) == x {
        return float16.Fromfloat32(f).Bits()
    }

    /* truncate towards zero, then set the sticky bit */
    if math.Abs(float64(f)) > math.Abs(x) {
        f = math.Nextafter32(f, 0)
    }
    return float16.Fromfloat32(math.Float32frombits(math.Float32bits(f) | 1)).Bits()
}

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

package fold

import (
    `github.com/cloudwego/spvlower/internal/builtin`
    `github.com/cloudwego/spvlower/internal/fp`
    `github.com/cloudwego/spvlower/ir`
)

type _UnaryFunc  func(x uint64, w fp.Width) uint64
type _BinaryFunc func(x uint64, y uint64, w fp.Width) uint64

var _unaryBuiltins = map[string]_UnaryFunc {
    "sqrt"  : fp.Sqrt,
    "fabs"  : fp.Abs,
    "floor" : fp.Floor,
    "ceil"  : fp.Ceil,
    "trunc" : fp.Trunc,
}

var _signBuiltins = map[string]bool {
    "fabs"     : true,
    "copysign" : true,
}

var _binaryBuiltins = map[string]_BinaryFunc {
    "fmin"     : fp.Min,
    "fmax"     : fp.Max,
    "copysign" : fp.CopySign,
}

// Instruction evaluates v when every operand is a constant, following IEEE-754
// round-to-nearest-even at the precision of each operation. Lanes of arithmetic
// operands whose width is in daz are flushed to signed zero before evaluation
// when they are denormal. It returns the interned result constant, or false if
// v cannot be folded.
func Instruction(fn *ir.Func, v ir.Value, daz fp.Width) (ir.Value, bool) {
    p := fn.Instr(v)
    if p.Type.IsVoid() || len(p.Args) == 0 {
        return ir.Nil, false
    }

    /* all the operands must be constants */
    args := make([]*ir.Const, len(p.Args))
    for i, a := range p.Args {
        if args[i] = fn.Const(a); args[i] == nil {
            return ir.Nil, false
        }
    }

    /* flush denormal inputs of arithmetic operations */
    if arith(p) {
        for i, c := range args {
            args[i] = flushed(c, daz)
        }
    }

    /* evaluate the instruction */
    bits, ok := evaluate(p, args)
    if !ok {
        return ir.Nil, false
    } else {
        return fn.Module.ConstBits(p.Type, bits...), true
    }
}

// arith reports whether p computes a value under the denormal mode. Bit
// reinterpretation and sign manipulation see their operands unchanged.
func arith(p *ir.Instr) bool {
    switch p.Op {
        case ir.OpFAdd, ir.OpFSub, ir.OpFMul, ir.OpFDiv, ir.OpFRem : return true
        case ir.OpFPExt, ir.OpFPTrunc                              : return true
        case ir.OpCall                                             : return !_signBuiltins[callee(p)]
        default                                                    : return false
    }
}

func callee(p *ir.Instr) string {
    if name, ok := builtin.Demangle(p.Callee); ok {
        return name
    } else {
        return p.Callee
    }
}

func flushed(c *ir.Const, daz fp.Width) *ir.Const {
    w := fp.WidthOf(c.Type)
    if !daz.Has(w) {
        return c
    }

    /* replace every denormal lane */
    var ret *ir.Const
    for i, v := range c.Bits {
        if fp.IsDenormal(v, w) {
            if ret == nil {
                ret = &ir.Const { Type: c.Type, Bits: append([]uint64(nil), c.Bits...) }
            }
            ret.Bits[i] = fp.FlushDenormal(v, w)
        }
    }

    /* nothing changed */
    if ret == nil {
        return c
    } else {
        return ret
    }
}

func evaluate(p *ir.Instr, args []*ir.Const) ([]uint64, bool) {
    switch p.Op {
        case ir.OpFAdd, ir.OpFSub, ir.OpFMul, ir.OpFDiv, ir.OpFRem : return binary(p, args)
        case ir.OpFNeg                                             : return unary(p, args, fp.Neg)
        case ir.OpFPExt, ir.OpFPTrunc                              : return convert(p, args)
        case ir.OpSIToFP, ir.OpUIToFP                              : return itofp(p, args)
        case ir.OpBitCast                                          : return bitcast(p, args)
        case ir.OpCall                                             : return call(p, args)
        default                                                    : return nil, false
    }
}

func lanes(p *ir.Instr, args []*ir.Const) bool {
    for _, c := range args {
        if c.Type.NumLanes() != p.Type.NumLanes() {
            return false
        }
    }
    return true
}

func binary(p *ir.Instr, args []*ir.Const) ([]uint64, bool) {
    w := fp.WidthOf(p.Type)
    if w == 0 || len(args) != 2 || args[0].Type != p.Type || args[1].Type != p.Type {
        return nil, false
    }

    /* evaluate lane by lane */
    ret := make([]uint64, p.Type.NumLanes())
    for i := range ret {
        ret[i] = fp.Binary(p.Op, args[0].Bits[i], args[1].Bits[i], w)
    }
    return ret, true
}

func unary(p *ir.Instr, args []*ir.Const, fn _UnaryFunc) ([]uint64, bool) {
    w := fp.WidthOf(p.Type)
    if w == 0 || len(args) != 1 || !lanes(p, args) || args[0].Type != p.Type {
        return nil, false
    }

    /* evaluate lane by lane */
    ret := make([]uint64, p.Type.NumLanes())
    for i := range ret {
        ret[i] = fn(args[0].Bits[i], w)
    }
    return ret, true
}

func convert(p *ir.Instr, args []*ir.Const) ([]uint64, bool) {
    to := fp.WidthOf(p.Type)
    from := fp.WidthOf(args[0].Type)

    /* both sides must be floating */
    if to == 0 || from == 0 || len(args) != 1 || !lanes(p, args) {
        return nil, false
    }

    /* convert lane by lane */
    ret := make([]uint64, p.Type.NumLanes())
    for i := range ret {
        ret[i] = fp.Convert(args[0].Bits[i], from, to)
    }
    return ret, true
}

func itofp(p *ir.Instr, args []*ir.Const) ([]uint64, bool) {
    w := fp.WidthOf(p.Type)
    if w == 0 || len(args) != 1 || !lanes(p, args) || !args[0].Type.IsInt() {
        return nil, false
    }

    /* convert lane by lane */
    ret := make([]uint64, p.Type.NumLanes())
    for i := range ret {
        if p.Op == ir.OpSIToFP {
            ret[i] = fp.FromInt(args[0].Int(i), w)
        } else {
            ret[i] = fp.FromUint(args[0].Bits[i], w)
        }
    }
    return ret, true
}

// bitcast reinterprets the packed lanes of the operand, lowest lane first.
func bitcast(p *ir.Instr, args []*ir.Const) ([]uint64, bool) {
    src := args[0]
    if len(args) != 1 || src.Type.Size() != p.Type.Size() || p.Type.Size() > 64 {
        return nil, false
    }

    /* pack the source lanes */
    acc := uint64(0)
    for i := src.Type.NumLanes() - 1; i >= 0; i-- {
        acc = acc << uint(src.Type.Bits()) | src.Bits[i]
    }

    /* split into destination lanes */
    nb := uint(p.Type.Bits())
    ret := make([]uint64, p.Type.NumLanes())
    for i := range ret {
        if nb == 64 {
            ret[i] = acc
        } else {
            ret[i], acc = acc & (1 << nb - 1), acc >> nb
        }
    }
    return ret, true
}

func call(p *ir.Instr, args []*ir.Const) ([]uint64, bool) {
    name := callee(p)

    /* unary math builtins */
    if fn, ok := _unaryBuiltins[name]; ok {
        return unary(p, args, fn)
    }

    /* binary math builtins */
    fn, ok := _binaryBuiltins[name]
    w := fp.WidthOf(p.Type)
    if !ok || w == 0 || len(args) != 2 || !lanes(p, args) {
        return nil, false
    }

    /* evaluate lane by lane */
    ret := make([]uint64, p.Type.NumLanes())
    for i := range ret {
        ret[i] = fn(args[0].Bits[i], args[1].Bits[i], w)
    }
    return ret, true
}

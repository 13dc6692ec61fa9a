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

package lower

import (
    `math`

    `github.com/cloudwego/spvlower/internal/builtin`
    `github.com/cloudwego/spvlower/internal/fp`
    `github.com/cloudwego/spvlower/ir`
)

var (
    _UnpackHalf2x16 = builtin.Mangle("unpackHalf2x16", []ir.Type { ir.TInt32 })
    _UnpackHalfType = ir.VectorOf(ir.TFloat, 2)
)

// unpackHalf expands unpackHalf2x16 of a constant. The inliner folds this call
// on its own but ignores the half denormal mode, so it is handled here when
// 16-bit denormals are flushed.
func (self *AlgebraTransform) unpackHalf(v ir.Value, p *ir.Instr) bool {
    if p.Op != ir.OpCall || p.Callee != _UnpackHalf2x16 || p.Type != _UnpackHalfType {
        return false
    } else if !self.fpc.DenormFlushToZero.Has(fp.W16) || len(p.Args) != 1 {
        return false
    }

    /* the argument must be a 32-bit integer constant */
    c := self.fn.Const(p.Args[0])
    if c == nil || c.Type != ir.TInt32 {
        return false
    }

    /* low half goes to the first lane */
    lo := uint16(c.Bits[0])
    hi := uint16(c.Bits[0] >> 16)
    nv := self.fn.Module.ConstBits(_UnpackHalfType, widenHalf(lo), widenHalf(hi))

    /* replace the call with the vector */
    self.trace("constant folding", nv, v)
    self.fn.ReplaceAllUsesWith(v, nv)
    self.deleteDead(v)
    self.changed = true
    addcount(&UnpackCount, 1)
    return true
}

// widenHalf flushes a denormal half input to a zero of the same sign, then
// widens it to float. The widening is exact, so the denormal mode of the
// float result never applies.
func widenHalf(h uint16) uint64 {
    if fp.IsHalfDenormal(h) {
        h = uint16(fp.FlushDenormal(uint64(h), fp.W16))
    }
    return uint64(math.Float32bits(fp.HalfToFloat32(h)))
}

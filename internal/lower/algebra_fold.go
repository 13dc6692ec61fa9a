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
    `github.com/cloudwego/spvlower/internal/fold`
    `github.com/cloudwego/spvlower/internal/fp`
    `github.com/cloudwego/spvlower/ir`
)

// foldConstants scans every instruction once: dead instructions are removed,
// floating instructions with constant operands are folded with the denormal
// policy of the function, and constant half unpacking is expanded by hand.
func (self *AlgebraTransform) foldConstants() {
    for _, bb := range self.fn.Blocks {
        for _, v := range append([]ir.Value(nil), bb.Ins...) {
            if !self.fn.IsLive(v) {
                continue
            }

            /* remove trivially dead instructions */
            if ir.IsTriviallyDead(self.fn, v, self.Lib) {
                self.deleteDead(v)
                continue
            }

            /* only floating expressions with a leading constant are candidates */
            p := self.fn.Instr(v)
            if p.UseEmpty() || len(p.Args) == 0 || !p.Type.IsFPOrFPVector() || !p.Args[0].IsConst() {
                continue
            }

            /* generic constant folding, then the half unpacking special case */
            if !self.foldInstr(v, p) {
                self.unpackHalf(v, p)
            }
        }
    }
}

func (self *AlgebraTransform) foldInstr(v ir.Value, p *ir.Instr) bool {
    c, ok := fold.Instruction(self.fn, v, self.fpc.DenormFlushToZero)
    if !ok {
        return false
    }

    /* replace denormal results with zero of the same sign */
    if self.fpc.FlushesDenormals(p.Type) {
        c = flushConst(self.fn.Module, c)
    }

    /* replace the instruction with the constant */
    self.trace("constant folding", c, v)
    self.fn.ReplaceAllUsesWith(v, c)
    self.deleteDead(v)
    self.changed = true
    addcount(&FoldCount, 1)
    return true
}

func flushConst(m *ir.Module, v ir.Value) ir.Value {
    c := m.Const(v)
    w := fp.WidthOf(c.Type)

    /* check every lane */
    var bits []uint64
    for i, x := range c.Bits {
        if fp.IsFiniteNonZero(x, w) && fp.IsDenormal(x, w) {
            if bits == nil {
                bits = append([]uint64(nil), c.Bits...)
            }
            bits[i] = fp.FlushDenormal(x, w)
        }
    }

    /* intern the flushed constant if anything changed */
    if bits == nil {
        return v
    } else {
        return m.ConstBits(c.Type, bits...)
    }
}

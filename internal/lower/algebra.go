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
    `github.com/cloudwego/spvlower/internal/builtin`
    `github.com/cloudwego/spvlower/internal/fp`
    `github.com/cloudwego/spvlower/ir`
    `github.com/cloudwego/spvlower/internal/opts`
)

type _VisitFunc func(self *AlgebraTransform, v ir.Value, p *ir.Instr) error

var _visitors = map[ir.Opcode]_VisitFunc {
    ir.OpFAdd : (*AlgebraTransform).visitBinaryOperator,
    ir.OpFSub : (*AlgebraTransform).visitBinaryOperator,
    ir.OpFMul : (*AlgebraTransform).visitBinaryOperator,
    ir.OpFDiv : (*AlgebraTransform).visitBinaryOperator,
}

// AlgebraTransform folds floating constants under the function's float
// controls, then simplifies floating binary operators algebraically.
type AlgebraTransform struct {
    Options  opts.Options
    Controls fp.ControlsProvider
    Lib      ir.LibInfo
    Emitter  builtin.Emitter
    fn       *ir.Func
    fpc      fp.Controls
    changed  bool
}

func NewAlgebraTransform(o opts.Options, fc fp.ControlsProvider, li ir.LibInfo, em builtin.Emitter) *AlgebraTransform {
    return &AlgebraTransform {
        Options  : o,
        Controls : fc,
        Lib      : li,
        Emitter  : em,
    }
}

// Apply runs the transform on a single function and reports whether anything
// changed. An error means the builtin emitter failed and the compilation
// cannot continue.
func (self *AlgebraTransform) Apply(fn *ir.Func) (bool, error) {
    self.fn = fn
    self.changed = false
    self.fpc = fp.Controls{}

    /* clear the function reference when done */
    defer func() { self.fn = nil }()

    /* read the float controls once */
    if self.Controls != nil {
        self.fpc = self.Controls.FloatControls(fn)
    }

    /* dump the controls in debug mode */
    self.traceControls()

    /* Phase 1: constant folding, only needed when denormals are flushed */
    if self.Options.CanFold(uint8(self.fpc.DenormFlushToZero)) {
        self.foldConstants()
    }

    /* Phase 2: algebraic simplification of binary operators */
    if self.Options.EnableFloatOpt {
        if err := self.visitFunction(); err != nil {
            return self.changed, err
        }
        self.sweep()
    }

    /* all done */
    return self.changed, nil
}

// ApplyModule runs the transform on every function of the module that has a
// body. It stops at the first error and returns the function that failed.
func (self *AlgebraTransform) ApplyModule(m *ir.Module) (bool, *ir.Func, error) {
    changed := false
    for _, fn := range m.Funcs {
        if len(fn.Blocks) == 0 {
            continue
        }
        ok, err := self.Apply(fn)
        changed = changed || ok
        if err != nil {
            return changed, fn, err
        }
    }
    return changed, nil, nil
}

type _Visit struct {
    v ir.Value
    p *ir.Instr
}

// visitFunction dispatches every registered opcode to its visitor. The block
// is copied first, so rewrites never disturb the iteration, and handles that
// were erased or recycled in the meantime are skipped.
func (self *AlgebraTransform) visitFunction() error {
    for _, bb := range self.fn.Blocks {
        ins := make([]_Visit, 0, len(bb.Ins))
        for _, v := range bb.Ins {
            ins = append(ins, _Visit { v: v, p: self.fn.Instr(v) })
        }

        /* dispatch on opcode */
        for _, it := range ins {
            if !self.fn.IsLive(it.v) || self.fn.Instr(it.v) != it.p {
                continue
            }
            if fn, ok := _visitors[it.p.Op]; ok {
                if err := fn(self, it.v, it.p); err != nil {
                    return err
                }
            }
        }
    }
    return nil
}

// erase removes v and any operand that became trivially dead because of it.
// The caller must have redirected every use of v first.
func (self *AlgebraTransform) erase(v ir.Value) {
    p := self.fn.Instr(v)
    args := append([]ir.Value(nil), p.Args...)

    /* detach and remove */
    self.fn.DropAllReferences(v)
    self.fn.Erase(v)
    self.changed = true

    /* operands may be dead now */
    for _, a := range args {
        self.deleteDead(a)
    }
}

func (self *AlgebraTransform) deleteDead(v ir.Value) {
    if !v.IsInst() || !ir.IsTriviallyDead(self.fn, v, self.Lib) {
        return
    }

    /* trace before the instruction is gone */
    self.trace("DCE", ir.Nil, v)
    if nb := ir.RecursivelyDeleteDead(self.fn, v, self.Lib); nb != 0 {
        self.changed = true
        addcount(&DeadCount, nb)
    }
}

// sweep removes every trivially dead instruction left in the function.
func (self *AlgebraTransform) sweep() {
    for i := len(self.fn.Blocks) - 1; i >= 0; i-- {
        bb := self.fn.Blocks[i]
        ins := append([]ir.Value(nil), bb.Ins...)
        for j := len(ins) - 1; j >= 0; j-- {
            self.deleteDead(ins[j])
        }
    }
}

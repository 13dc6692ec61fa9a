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
    `github.com/cloudwego/spvlower/ir`
)

func (self *AlgebraTransform) isConstZero(v ir.Value) bool {
    if c := self.fn.Const(v); c == nil {
        return false
    } else {
        return c.Type.IsFPOrFPVector() && c.IsZero()
    }
}

func (self *AlgebraTransform) setFlags(p *ir.Instr, flags ir.FastMath) {
    if p.Flags != flags {
        p.Flags = flags
        self.changed = true
        addcount(&ContractCount, 1)
    }
}

func (self *AlgebraTransform) valid(v ir.Value) bool {
    switch v.Kind() {
        case ir.K_none : return false
        case ir.K_inst : return self.fn.IsLive(v)
        default        : return true
    }
}

func (self *AlgebraTransform) visitBinaryOperator(v ir.Value, p *ir.Instr) error {
    x, y := p.Args[0], p.Args[1]
    dest := ir.Nil

    /* contraction and reassociation must agree with the operand chains */
    if p.Op == ir.OpFAdd && p.Flags.AllowContract() {
        if self.isOperandNoContract(x) || self.isOperandNoContract(y) {
            self.setFlags(p, p.Flags &^ (ir.FMContract | ir.FMReassoc))
        }
    }

    /* identities are not bit-exact once denormals are flushed or signed
     * zeros, NaNs and infinities must be preserved */
    if !self.fpc.Exact() {
        xz := self.isConstZero(x)
        yz := self.isConstZero(y)

        /* find an identity */
        switch p.Op {
            case ir.OpFAdd: {
                if xz {
                    dest = y
                } else if yz {
                    dest = x
                }
            }
            case ir.OpFMul: {
                if xz {
                    dest = x
                } else if yz {
                    dest = y
                }
            }
            case ir.OpFDiv: {
                if xz && !yz {
                    dest = x
                }
            }
            case ir.OpFSub: {
                if yz {
                    dest = x
                }
            }
        }

        /* replace the operator with one of its operands */
        if dest != ir.Nil {
            self.trace("identity", dest, v)
            self.fn.ReplaceAllUsesWith(v, dest)
            self.erase(v)
            addcount(&IdentityCount, 1)
            return nil
        }
    }

    /* divisions that survived go through the runtime implementation */
    if p.Op == ir.OpFDiv && self.valid(x) && self.valid(y) {
        return self.lowerDivision(v, p, x, y)
    }
    return nil
}

// lowerDivision replaces v with a call to the runtime fdiv. The call is
// emitted before anything is rewritten, so a failed emission leaves the
// function untouched.
func (self *AlgebraTransform) lowerDivision(v ir.Value, p *ir.Instr, x ir.Value, y ir.Value) error {
    call, err := self.Emitter.EmitCall(self.fn, "fdiv", p.Type, []ir.Value { x, y }, v)
    if err != nil {
        return err
    }

    /* replace the division with the call */
    self.trace("fdiv", call, v)
    self.fn.ReplaceAllUsesWith(v, call)
    self.erase(v)
    addcount(&DivCallCount, 1)
    return nil
}

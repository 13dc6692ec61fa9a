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
    `github.com/oleiade/lane`

    `github.com/cloudwego/spvlower/ir`
    `github.com/cloudwego/spvlower/internal/opts`
)

// forbidsContract reports whether an operator carries fast-math flags but
// not the contract flag, which marks it as explicitly not contractible.
func forbidsContract(p *ir.Instr) bool {
    return p.Op.IsFloatBinary() && p.Flags.Any() && !p.Flags.AllowContract()
}

// isOperandNoContract looks backwards through the binary operators that
// define v for one that forbids contraction.
func (self *AlgebraTransform) isOperandNoContract(v ir.Value) bool {
    switch self.Options.Contraction {
        case opts.ContractAllOperands : return noContractAny(self.fn, v)
        default                       : return noContractFirst(self.fn, v)
    }
}

// noContractFirst only ever follows the first operand of each operator.
func noContractFirst(fn *ir.Func, v ir.Value) bool {
    for fn.IsLive(v) {
        p := fn.Instr(v)
        if !p.Op.IsBinary() {
            return false
        } else if forbidsContract(p) {
            return true
        } else {
            v = p.Args[0]
        }
    }
    return false
}

// noContractAny follows every operand, each shared operator is visited once.
func noContractAny(fn *ir.Func, v ir.Value) bool {
    st := lane.NewStack()
    vis := make(map[ir.Value]bool)

    /* depth-first over the operand graph */
    for st.Push(v); !st.Empty(); {
        r := st.Pop().(ir.Value)
        if vis[r] || !fn.IsLive(r) {
            continue
        }

        /* only binary operators are followed */
        vis[r] = true
        p := fn.Instr(r)
        if !p.Op.IsBinary() {
            continue
        } else if forbidsContract(p) {
            return true
        }

        /* check all the operands */
        for _, a := range p.Args {
            st.Push(a)
        }
    }
    return false
}

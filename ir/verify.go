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

// Verify checks the structural invariants of the def-use graph: every operand
// is live, user lists mirror operand slots exactly, and every live instruction
// is linked into exactly one block of this function.
func (self *Func) Verify() error {
    refs := make(map[Value]map[Value]int)
    seen := make(map[Value]bool)

    /* every linked instruction must be live and belong to its block */
    for _, bb := range self.Blocks {
        for _, v := range bb.Ins {
            if !self.IsLive(v) {
                return fmt.Errorf("bb_%d: reference to erased instruction %s", bb.Id, v)
            } else if seen[v] {
                return fmt.Errorf("bb_%d: instruction %s is linked twice", bb.Id, v)
            } else if p := self.ins[v.Index()]; p.block != bb {
                return fmt.Errorf("bb_%d: instruction %s claims another block", bb.Id, v)
            }
            seen[v] = true
        }
    }

    /* collect the operand slots */
    for i, p := range self.ins {
        if p == nil {
            continue
        }

        /* unlinked instructions are dangling */
        v := mkvalue(K_inst, i)
        if !seen[v] {
            return fmt.Errorf("instruction %s is not linked into any block", v)
        }

        /* check every operand */
        for _, a := range p.Args {
            switch a.Kind() {
                case K_none: {
                    return fmt.Errorf("%s: nil operand", self.Format(v))
                }
                case K_arg: {
                    if a.Index() >= len(self.Args) {
                        return fmt.Errorf("%s: argument out of range", self.Format(v))
                    }
                }
                case K_const: {
                    if a.Index() >= len(self.Module.consts) {
                        return fmt.Errorf("%s: unknown constant", self.Format(v))
                    }
                }
                case K_inst: {
                    if !self.IsLive(a) {
                        return fmt.Errorf("%s: use of erased instruction %s", self.Format(v), a)
                    }
                    if refs[a] == nil {
                        refs[a] = make(map[Value]int)
                    }
                    refs[a][v]++
                }
            }
        }
    }

    /* user lists must mirror the operand slots */
    for i, p := range self.ins {
        if p == nil {
            continue
        }

        /* count the users */
        v := mkvalue(K_inst, i)
        got := make(map[Value]int, len(p.users))
        for _, u := range p.users {
            got[u]++
        }

        /* compare with the operand slots */
        want := refs[v]
        if len(got) != len(want) {
            return fmt.Errorf("%s: user list out of sync: %v", v, p.users)
        }
        for u, n := range want {
            if got[u] != n {
                return fmt.Errorf("%s: user %s recorded %d times, used %d times", v, u, got[u], n)
            }
        }
    }
    return nil
}

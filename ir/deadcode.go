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
    `github.com/oleiade/lane`
)

// LibInfo answers whether a called function is free of side effects.
type LibInfo interface {
    IsPure(callee string) bool
}

// HasSideEffects reports whether removing the instruction could change
// observable behavior even if nothing uses its result.
func HasSideEffects(ins *Instr, li LibInfo) bool {
    switch ins.Op {
        case OpStore, OpBr, OpRet : return true
        case OpCall               : return li == nil || !li.IsPure(ins.Callee)
        default                   : return false
    }
}

// IsTriviallyDead reports whether v can be erased without changing the
// program: nothing uses it, it has no side effects and it is not a terminator.
func IsTriviallyDead(fn *Func, v Value, li LibInfo) bool {
    if !fn.IsLive(v) {
        return false
    } else if p := fn.Instr(v); !p.UseEmpty() || p.Op.IsTerminator() {
        return false
    } else {
        return !HasSideEffects(p, li)
    }
}

// RecursivelyDeleteDead erases v if it is trivially dead, then keeps erasing
// operands that became trivially dead because of it. It returns the number of
// erased instructions.
func RecursivelyDeleteDead(fn *Func, v Value, li LibInfo) int {
    if !IsTriviallyDead(fn, v, li) {
        return 0
    }

    /* worklist of candidates */
    nb := 0
    st := lane.NewStack()
    st.Push(v)

    /* erase until no more dead instructions */
    for !st.Empty() {
        r := st.Pop().(Value)
        if !IsTriviallyDead(fn, r, li) {
            continue
        }

        /* remember the operands before detaching */
        args := append([]Value(nil), fn.Instr(r).Args...)
        fn.DropAllReferences(r)
        fn.Erase(r)
        nb++

        /* operands may be dead now */
        for _, a := range args {
            if a.IsInst() {
                st.Push(a)
            }
        }
    }
    return nb
}

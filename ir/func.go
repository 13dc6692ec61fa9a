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

    `golang.org/x/exp/slices`
)

type Block struct {
    Id   int
    Name string
    Ins  []Value
    fn   *Func
}

func (self *Block) Func() *Func {
    return self.fn
}

func (self *Block) indexOf(v Value) int {
    return slices.Index(self.Ins, v)
}

// Func is a single function body. Instructions live in an arena addressed by
// their handle index; erased slots go to a free list and are reused.
type Func struct {
    Name   string
    Ret    Type
    Args   []Type
    Blocks []*Block
    Module *Module
    ins    []*Instr
    free   []int
}

func (self *Func) Arg(i int) Value {
    if i < 0 || i >= len(self.Args) {
        panic(fmt.Sprintf("ir: argument index out of range: %d", i))
    } else {
        return mkvalue(K_arg, i)
    }
}

func (self *Func) Entry() *Block {
    if len(self.Blocks) == 0 {
        return nil
    } else {
        return self.Blocks[0]
    }
}

func (self *Func) NewBlock(name string) *Block {
    bb := &Block {
        Id   : len(self.Blocks),
        Name : name,
        fn   : self,
    }
    self.Blocks = append(self.Blocks, bb)
    return bb
}

// IsLive reports whether v refers to an instruction that has not been erased.
func (self *Func) IsLive(v Value) bool {
    return v.IsInst() && v.Index() < len(self.ins) && self.ins[v.Index()] != nil
}

// Instr returns the instruction behind v, panicking on stale handles.
func (self *Func) Instr(v Value) *Instr {
    if !self.IsLive(v) {
        panic("ir: not a live instruction: " + v.String())
    } else {
        return self.ins[v.Index()]
    }
}

// TypeOf returns the type of any value usable as an operand in this function.
func (self *Func) TypeOf(v Value) Type {
    switch v.Kind() {
        case K_inst  : return self.Instr(v).Type
        case K_const : return self.Module.Const(v).Type
        case K_arg   : return self.Args[v.Index()]
        default      : panic("ir: type of nil value")
    }
}

// Const returns the literal behind v, or nil if v is not a constant.
func (self *Func) Const(v Value) *Const {
    if !v.IsConst() {
        return nil
    } else {
        return self.Module.Const(v)
    }
}

func (self *Func) alloc(ins *Instr) Value {
    var id int
    var nb int

    /* reuse a free slot if any */
    if nb = len(self.free); nb != 0 {
        id, self.free = self.free[nb - 1], self.free[:nb - 1]
        self.ins[id] = ins
    } else {
        id = len(self.ins)
        self.ins = append(self.ins, ins)
    }

    /* register this instruction as a user of its operands */
    ins.id = mkvalue(K_inst, id)
    for _, a := range ins.Args {
        self.adduse(a, ins.id)
    }
    return ins.id
}

func (self *Func) adduse(v Value, user Value) {
    if v.IsInst() {
        p := self.Instr(v)
        p.users = append(p.users, user)
    }
}

func (self *Func) deluse(v Value, user Value) {
    if v.IsInst() {
        p := self.Instr(v)
        if i := slices.Index(p.users, user); i < 0 {
            panic(fmt.Sprintf("ir: %s is not a user of %s", user, v))
        } else {
            p.users = slices.Delete(p.users, i, i + 1)
        }
    }
}

// Append adds ins at the end of bb.
func (self *Func) Append(bb *Block, ins *Instr) Value {
    if bb.fn != self {
        panic("ir: block belongs to another function")
    }

    /* allocate and link */
    v := self.alloc(ins)
    ins.block = bb
    bb.Ins = append(bb.Ins, v)
    return v
}

// InsertBefore adds ins right before the instruction at.
func (self *Func) InsertBefore(at Value, ins *Instr) Value {
    p := self.Instr(at)
    i := p.block.indexOf(at)

    /* the instruction must be linked */
    if i < 0 {
        panic("ir: instruction is not linked: " + at.String())
    }

    /* allocate and link */
    v := self.alloc(ins)
    ins.block = p.block
    p.block.Ins = slices.Insert(p.block.Ins, i, v)
    return v
}

// SetArg replaces operand i of v, keeping user lists consistent.
func (self *Func) SetArg(v Value, i int, nv Value) {
    p := self.Instr(v)
    self.deluse(p.Args[i], v)
    p.Args[i] = nv
    self.adduse(nv, v)
}

// ReplaceAllUsesWith rewrites every operand slot referring to old so that it
// refers to nv instead. Old is left without users.
func (self *Func) ReplaceAllUsesWith(old Value, nv Value) {
    p := self.Instr(old)
    if old == nv {
        panic("ir: replacing a value with itself: " + old.String())
    }

    /* rewrite every consumer */
    for _, u := range p.users {
        q := self.Instr(u)
        for i, a := range q.Args {
            if a == old {
                q.Args[i] = nv
                self.adduse(nv, u)
            }
        }
    }

    /* user entries are moved, clear the old list */
    p.users = p.users[:0]
}

// DropAllReferences detaches v from every operand it refers to.
func (self *Func) DropAllReferences(v Value) {
    p := self.Instr(v)
    for _, a := range p.Args {
        self.deluse(a, v)
    }
    p.Args = nil
}

// Erase unlinks v from its block and frees its arena slot. The instruction
// must not have any users left.
func (self *Func) Erase(v Value) {
    p := self.Instr(v)
    if len(p.users) != 0 {
        panic(fmt.Sprintf("ir: erasing %s which still has %d users", v, len(p.users)))
    }

    /* detach from operands if not done yet */
    if len(p.Args) != 0 {
        self.DropAllReferences(v)
    }

    /* unlink from the basic block */
    if bb := p.block; bb != nil {
        if i := bb.indexOf(v); i >= 0 {
            bb.Ins = slices.Delete(bb.Ins, i, i + 1)
        }
    }

    /* free the slot */
    p.block = nil
    self.ins[v.Index()] = nil
    self.free = append(self.free, v.Index())
}

// NumInstrs is the number of live instructions.
func (self *Func) NumInstrs() int {
    return len(self.ins) - 1 - len(self.free)
}

// ForEach calls fn for every live instruction in block order.
func (self *Func) ForEach(fn func(v Value, ins *Instr)) {
    for _, bb := range self.Blocks {
        for _, v := range append([]Value(nil), bb.Ins...) {
            if self.IsLive(v) {
                fn(v, self.ins[v.Index()])
            }
        }
    }
}

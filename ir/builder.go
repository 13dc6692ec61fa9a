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

// Builder appends instructions to the end of a basic block.
type Builder struct {
    fn *Func
    bb *Block
}

func NewBuilder(bb *Block) *Builder {
    return &Builder {
        fn: bb.fn,
        bb: bb,
    }
}

func (self *Builder) Func() *Func {
    return self.fn
}

func (self *Builder) SetBlock(bb *Block) {
    if bb.fn != self.fn {
        panic("ir: block belongs to another function")
    } else {
        self.bb = bb
    }
}

func (self *Builder) Emit(op Opcode, t Type, flags FastMath, args ...Value) Value {
    return self.fn.Append(self.bb, &Instr {
        Op    : op,
        Type  : t,
        Args  : args,
        Flags : flags,
    })
}

// Binary emits a two-operand operator typed after its left operand.
func (self *Builder) Binary(op Opcode, flags FastMath, x Value, y Value) Value {
    if !op.IsBinary() {
        panic("ir: not a binary operator: " + op.String())
    } else if tx, ty := self.fn.TypeOf(x), self.fn.TypeOf(y); tx != ty {
        panic("ir: operand type mismatch: " + tx.String() + " and " + ty.String())
    } else {
        return self.Emit(op, tx, flags, x, y)
    }
}

func (self *Builder) FAdd(x Value, y Value) Value { return self.Binary(OpFAdd, 0, x, y) }
func (self *Builder) FSub(x Value, y Value) Value { return self.Binary(OpFSub, 0, x, y) }
func (self *Builder) FMul(x Value, y Value) Value { return self.Binary(OpFMul, 0, x, y) }
func (self *Builder) FDiv(x Value, y Value) Value { return self.Binary(OpFDiv, 0, x, y) }

func (self *Builder) FNeg(x Value) Value {
    return self.Emit(OpFNeg, self.fn.TypeOf(x), 0, x)
}

// Convert emits a cast of x to type t.
func (self *Builder) Convert(op Opcode, t Type, x Value) Value {
    return self.Emit(op, t, 0, x)
}

// Call emits a call to name, declaring it in the module if needed.
func (self *Builder) Call(name string, ret Type, args ...Value) Value {
    tys := make([]Type, len(args))
    for i, a := range args {
        tys[i] = self.fn.TypeOf(a)
    }

    /* declare the callee */
    if d, ok := self.fn.Module.Declare(name, ret, tys); ok && !d.Same(ret, tys) {
        panic("ir: conflicting declaration of @" + name)
    }

    /* emit the call */
    return self.fn.Append(self.bb, &Instr {
        Op     : OpCall,
        Type   : ret,
        Args   : args,
        Callee : name,
    })
}

func (self *Builder) Load(t Type, ptr Value) Value {
    return self.Emit(OpLoad, t, 0, ptr)
}

func (self *Builder) Store(v Value, ptr Value) Value {
    return self.Emit(OpStore, TVoid, 0, v, ptr)
}

func (self *Builder) Ret(v ...Value) Value {
    return self.Emit(OpRet, TVoid, 0, v...)
}

func (self *Builder) Br() Value {
    return self.Emit(OpBr, TVoid, 0)
}

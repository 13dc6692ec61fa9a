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

package builtin

import (
    `github.com/cloudwego/spvlower/ir`
)

// Emitter emits calls to runtime builtins.
type Emitter interface {
    EmitCall(fn *ir.Func, name string, ret ir.Type, args []ir.Value, before ir.Value) (ir.Value, error)
}

// Dispatcher is the default Emitter. It mangles the builtin name after its
// argument types, declares the symbol in the module and inserts the call
// right before the insertion point.
type Dispatcher struct {
    Lib *LibraryInfo
}

func NewDispatcher(lib *LibraryInfo) *Dispatcher {
    return &Dispatcher { Lib: lib }
}

func (self *Dispatcher) EmitCall(fn *ir.Func, name string, ret ir.Type, args []ir.Value, before ir.Value) (ir.Value, error) {
    tys := make([]ir.Type, len(args))
    for i, a := range args {
        tys[i] = fn.TypeOf(a)
    }

    /* the runtime must provide an implementation */
    if self.Lib != nil && !self.Lib.Known(name) {
        return ir.Nil, EUnknown(name, tys)
    }

    /* declare the mangled symbol, checking any previous declaration */
    sym := Mangle(name, tys)
    if d, ok := fn.Module.Declare(sym, ret, tys); ok && !d.Same(ret, tys) {
        return ir.Nil, ESignature(sym, d, ret, tys)
    }

    /* insert the call */
    return fn.InsertBefore(before, &ir.Instr {
        Op     : ir.OpCall,
        Type   : ret,
        Args   : append([]ir.Value(nil), args...),
        Callee : sym,
    }), nil
}

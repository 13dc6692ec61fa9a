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

// Value is a handle to an SSA value: an instruction in the owning function's
// arena, a constant in the module pool, or a function argument.
type Value uint64

const (
    _B_kind = 62
    _M_kind = 0x03
)

const (
    _R_kind  = _M_kind << _B_kind
    _R_index = (1 << _B_kind) - 1
)

const (
    K_none  = 0
    K_inst  = 1
    K_const = 2
    K_arg   = 3
)

// Nil is the absent value.
const Nil Value = 0

func mkvalue(kind uint64, idx int) Value {
    if idx < 0 || uint64(idx) > _R_index {
        panic("mkvalue: invalid value index")
    } else {
        return Value(((kind & _M_kind) << _B_kind) | uint64(idx))
    }
}

func (self Value) Kind() uint8 {
    return uint8((self & _R_kind) >> _B_kind)
}

func (self Value) Index() int {
    return int(self & _R_index)
}

func (self Value) IsNil() bool {
    return self.Kind() == K_none
}

func (self Value) IsInst() bool {
    return self.Kind() == K_inst
}

func (self Value) IsConst() bool {
    return self.Kind() == K_const
}

func (self Value) IsArg() bool {
    return self.Kind() == K_arg
}

func (self Value) String() string {
    switch self.Kind() {
        case K_inst  : return fmt.Sprintf("%%%d", self.Index())
        case K_const : return fmt.Sprintf("#%d", self.Index())
        case K_arg   : return fmt.Sprintf("%%a%d", self.Index())
        default      : return "nil"
    }
}

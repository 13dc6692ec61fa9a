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
    `strings`
)

type Opcode uint8

const (
    OpInvalid Opcode = iota
    OpFAdd
    OpFSub
    OpFMul
    OpFDiv
    OpFRem
    OpFNeg
    OpFPExt
    OpFPTrunc
    OpSIToFP
    OpUIToFP
    OpFPToSI
    OpBitCast
    OpExtractElement
    OpAdd
    OpMul
    OpLoad
    OpStore
    OpCall
    OpBr
    OpRet
)

func (self Opcode) String() string {
    switch self {
        case OpFAdd           : return "fadd"
        case OpFSub           : return "fsub"
        case OpFMul           : return "fmul"
        case OpFDiv           : return "fdiv"
        case OpFRem           : return "frem"
        case OpFNeg           : return "fneg"
        case OpFPExt          : return "fpext"
        case OpFPTrunc        : return "fptrunc"
        case OpSIToFP         : return "sitofp"
        case OpUIToFP         : return "uitofp"
        case OpFPToSI         : return "fptosi"
        case OpBitCast        : return "bitcast"
        case OpExtractElement : return "extractelement"
        case OpAdd            : return "add"
        case OpMul            : return "mul"
        case OpLoad           : return "load"
        case OpStore          : return "store"
        case OpCall           : return "call"
        case OpBr             : return "br"
        case OpRet            : return "ret"
        default               : return "invalid"
    }
}

// IsBinary reports whether the opcode is a two-operand arithmetic operator,
// floating or integer.
func (self Opcode) IsBinary() bool {
    switch self {
        case OpFAdd, OpFSub, OpFMul, OpFDiv, OpFRem, OpAdd, OpMul : return true
        default                                                   : return false
    }
}

// IsFloatBinary reports whether the opcode is a floating two-operand operator.
func (self Opcode) IsFloatBinary() bool {
    switch self {
        case OpFAdd, OpFSub, OpFMul, OpFDiv, OpFRem : return true
        default                                     : return false
    }
}

func (self Opcode) IsTerminator() bool {
    return self == OpBr || self == OpRet
}

// FastMath is the set of relaxations an individual floating instruction permits.
type FastMath uint8

const (
    FMReassoc FastMath = 1 << iota
    FMNoNaNs
    FMNoInfs
    FMNoSignedZeros
    FMAllowRecip
    FMContract
    FMApproxFunc
)

const (
    FMFast = FMReassoc | FMNoNaNs | FMNoInfs | FMNoSignedZeros | FMAllowRecip | FMContract | FMApproxFunc
)

func (self FastMath) Any() bool {
    return self != 0
}

func (self FastMath) AllowReassoc() bool {
    return self & FMReassoc != 0
}

func (self FastMath) AllowContract() bool {
    return self & FMContract != 0
}

func (self FastMath) String() string {
    if self == FMFast {
        return "fast"
    }

    /* individual flag names */
    buf := make([]string, 0, 7)
    for _, f := range []struct { m FastMath; s string } {
        { FMReassoc       , "reassoc"  },
        { FMNoNaNs        , "nnan"     },
        { FMNoInfs        , "ninf"     },
        { FMNoSignedZeros , "nsz"      },
        { FMAllowRecip    , "arcp"     },
        { FMContract      , "contract" },
        { FMApproxFunc    , "afn"      },
    } {
        if self & f.m != 0 {
            buf = append(buf, f.s)
        }
    }

    /* join them together */
    return strings.Join(buf, " ")
}

// Instr is an instruction in the function arena. Users holds one entry per
// operand slot of another instruction that refers to this one.
type Instr struct {
    Op     Opcode
    Type   Type
    Args   []Value
    Flags  FastMath
    Callee string
    id     Value
    block  *Block
    users  []Value
}

func (self *Instr) Id() Value {
    return self.id
}

func (self *Instr) Block() *Block {
    return self.block
}

// Users returns the consumers of this instruction, one entry per operand slot.
func (self *Instr) Users() []Value {
    return append([]Value(nil), self.users...)
}

func (self *Instr) NumUsers() int {
    return len(self.users)
}

func (self *Instr) UseEmpty() bool {
    return len(self.users) == 0
}

func (self *Instr) IsBinaryOp() bool {
    return self.Op.IsBinary()
}

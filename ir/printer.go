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
    `sort`
    `strings`
)

func sortedkeys(m map[string]*Decl) []string {
    ret := make([]string, 0, len(m))
    for k := range m {
        ret = append(ret, k)
    }
    sort.Strings(ret)
    return ret
}

func (self *Func) operand(v Value) string {
    switch v.Kind() {
        case K_const : return fmt.Sprintf("%s %s", self.TypeOf(v), self.Module.Const(v))
        case K_none  : return "<nil>"
        default      : return fmt.Sprintf("%s %s", self.TypeOf(v), v)
    }
}

// Format renders a single instruction.
func (self *Func) Format(v Value) string {
    p := self.Instr(v)
    args := make([]string, len(p.Args))

    /* dump operands */
    for i, a := range p.Args {
        args[i] = self.operand(a)
    }

    /* instructions without results */
    switch p.Op {
        case OpRet   : if len(args) == 0 { return "ret void" } else { return "ret " + args[0] }
        case OpBr    : return "br"
        case OpStore : return "store " + strings.Join(args, ", ")
    }

    /* fast-math flags */
    fm := ""
    if p.Flags.Any() {
        fm = p.Flags.String() + " "
    }

    /* calls */
    if p.Op == OpCall {
        if p.Type.IsVoid() {
            return fmt.Sprintf("call %svoid @%s(%s)", fm, p.Callee, strings.Join(args, ", "))
        } else {
            return fmt.Sprintf("%s = call %s%s @%s(%s)", v, fm, p.Type, p.Callee, strings.Join(args, ", "))
        }
    }

    /* everything else */
    return fmt.Sprintf("%s = %s %s%s", v, p.Op, fm, strings.Join(args, ", "))
}

func (self *Func) String() string {
    args := make([]string, len(self.Args))
    for i, t := range self.Args {
        args[i] = fmt.Sprintf("%s %s", t, mkvalue(K_arg, i))
    }

    /* function header */
    buf := []string {
        fmt.Sprintf("define %s @%s(%s) {", self.Ret, self.Name, strings.Join(args, ", ")),
    }

    /* every basic block */
    for _, bb := range self.Blocks {
        if bb.Name != "" {
            buf = append(buf, bb.Name + ":")
        } else {
            buf = append(buf, fmt.Sprintf("bb_%d:", bb.Id))
        }
        for _, v := range bb.Ins {
            buf = append(buf, "    " + self.Format(v))
        }
    }

    /* join them together */
    buf = append(buf, "}")
    return strings.Join(buf, "\n")
}

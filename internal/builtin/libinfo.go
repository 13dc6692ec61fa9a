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

// LibraryInfo knows which runtime builtins are pure functions of their
// arguments. Both plain and mangled names are recognized.
type LibraryInfo struct {
    pure map[string]bool
}

var _PureBuiltins = [...]string {
    "sqrt",
    "fabs",
    "floor",
    "ceil",
    "trunc",
    "fmin",
    "fmax",
    "copysign",
    "fdiv",
    "unpackHalf2x16",
}

func NewLibraryInfo(names ...string) *LibraryInfo {
    ret := &LibraryInfo { pure: make(map[string]bool, len(names)) }
    for _, v := range names {
        ret.pure[v] = true
    }
    return ret
}

// DefaultLibraryInfo recognizes the math and packing builtins of the runtime library.
func DefaultLibraryInfo() *LibraryInfo {
    return NewLibraryInfo(_PureBuiltins[:]...)
}

func (self *LibraryInfo) IsPure(callee string) bool {
    if self.pure[callee] {
        return true
    } else if name, ok := Demangle(callee); ok {
        return self.pure[name]
    } else {
        return false
    }
}

// Known reports whether name has a runtime implementation.
func (self *LibraryInfo) Known(name string) bool {
    return self.pure[name]
}

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
    `fmt`
    `strings`

    `github.com/cloudwego/spvlower/ir`
)

// SignatureError occures when a builtin is already declared with a different signature.
type SignatureError struct {
    Name string
    Have *ir.Decl
    Want ir.Decl
}

func (self SignatureError) Error() string {
    return fmt.Sprintf("SignatureError(%s): declared as %q, requested as %q", self.Name, self.Have, &self.Want)
}

// UnknownError occures when a builtin has no runtime implementation.
type UnknownError struct {
    Name string
    Args []ir.Type
}

func (self UnknownError) Error() string {
    args := make([]string, len(self.Args))
    for i, t := range self.Args {
        args[i] = t.String()
    }
    return fmt.Sprintf("UnknownError(%s): no runtime implementation for (%s)", self.Name, strings.Join(args, ", "))
}

func ESignature(name string, have *ir.Decl, ret ir.Type, args []ir.Type) SignatureError {
    return SignatureError {
        Name: name,
        Have: have,
        Want: ir.Decl { Name: name, Ret: ret, Args: args },
    }
}

func EUnknown(name string, args []ir.Type) UnknownError {
    return UnknownError {
        Name: name,
        Args: args,
    }
}

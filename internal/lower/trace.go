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

package lower

import (
    `fmt`
    `os`

    `github.com/davecgh/go-spew/spew`

    `github.com/cloudwego/spvlower/ir`
)

func (self *AlgebraTransform) describe(v ir.Value) string {
    switch {
        case v.IsConst()        : return self.fn.Module.Const(v).String()
        case self.fn.IsLive(v)  : return self.fn.Format(v)
        default                 : return v.String()
    }
}

// trace prints a rewrite of old into nv in debug mode. It must be called
// before old is erased.
func (self *AlgebraTransform) trace(kind string, nv ir.Value, old ir.Value) {
    if !self.Options.Debug {
        return
    }

    /* DCE has no replacement */
    if nv == ir.Nil {
        fmt.Fprintf(os.Stderr, "Algebraic transform: %s: %s\n", kind, self.describe(old))
    } else {
        fmt.Fprintf(os.Stderr, "Algebraic transform: %s: %s from: %s\n", kind, self.describe(nv), self.describe(old))
    }
}

func (self *AlgebraTransform) traceControls() {
    if self.Options.Debug {
        fmt.Fprintf(os.Stderr, "Run the algebraic transform on @%s\n", self.fn.Name)
        spew.Fdump(os.Stderr, self.fpc)
    }
}

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

package spvlower

import (
    `fmt`

    `github.com/cloudwego/spvlower/ir`
)

// DispatchError occures when a runtime builtin call could not be emitted. The
// compilation of the function cannot continue.
type DispatchError struct {
    Func string
    Err  error
}

func (self DispatchError) Error() string {
    return fmt.Sprintf("DispatchError(@%s): %s", self.Func, self.Err)
}

func (self DispatchError) Unwrap() error {
    return self.Err
}

func EDispatch(fn *ir.Func, err error) DispatchError {
    return DispatchError {
        Func: fn.Name,
        Err : err,
    }
}

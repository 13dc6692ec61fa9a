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
    `sort`

    `github.com/cloudwego/spvlower/internal/builtin`
    `github.com/cloudwego/spvlower/internal/fp`
    `github.com/cloudwego/spvlower/ir`
    `github.com/cloudwego/spvlower/internal/opts`
)

// Pass is a function transform.
type Pass interface {
    Apply(fn *ir.Func) (bool, error)
}

// Env carries the collaborators a pass is constructed with.
type Env struct {
    Options  opts.Options
    Controls fp.ControlsProvider
    Lib      *builtin.LibraryInfo
    Emitter  builtin.Emitter
}

type PassDescriptor struct {
    Name string
    Desc string
    New  func(env *Env) Pass
}

// Registry holds the passes available to the compiler driver. Nothing is
// registered implicitly, the driver calls RegisterPasses during start-up.
type Registry struct {
    passes map[string]PassDescriptor
}

func NewRegistry() *Registry {
    return &Registry { passes: make(map[string]PassDescriptor) }
}

func (self *Registry) Register(desc PassDescriptor) {
    if desc.Name == "" || desc.New == nil {
        panic("lower: invalid pass descriptor")
    } else if _, ok := self.passes[desc.Name]; ok {
        panic(fmt.Sprintf("lower: pass %q registered twice", desc.Name))
    } else {
        self.passes[desc.Name] = desc
    }
}

func (self *Registry) Lookup(name string) (PassDescriptor, bool) {
    desc, ok := self.passes[name]
    return desc, ok
}

func (self *Registry) Names() []string {
    ret := make([]string, 0, len(self.passes))
    for k := range self.passes {
        ret = append(ret, k)
    }
    sort.Strings(ret)
    return ret
}

const (
    AlgebraTransformName = "llpc-spirv-lower-algebra-transform"
)

var _passes = [...]PassDescriptor {
    { Name: AlgebraTransformName, Desc: "Lower SPIR-V algebraic transforms", New: func(env *Env) Pass { return NewAlgebraPass(env) } },
}

// RegisterPasses adds every pass of this package to r.
func RegisterPasses(r *Registry) {
    for _, p := range _passes {
        r.Register(p)
    }
}

// NewAlgebraPass creates the algebraic transform, filling in the default
// library info and builtin dispatcher when env leaves them out.
func NewAlgebraPass(env *Env) *AlgebraTransform {
    lib := env.Lib
    if lib == nil {
        lib = builtin.DefaultLibraryInfo()
    }

    /* default builtin emitter */
    em := env.Emitter
    if em == nil {
        em = builtin.NewDispatcher(lib)
    }

    /* construct the pass */
    return NewAlgebraTransform(env.Options, env.Controls, lib, em)
}

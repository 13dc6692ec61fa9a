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

// Package spvlower simplifies floating-point arithmetic in lowered shader IR.
//
// The algebraic transform folds floating constants while honoring the
// shader's denormal flush-to-zero mode, simplifies additions, subtractions,
// multiplications and divisions by zero when the float controls allow it,
// keeps contraction flags consistent with the operand chains, and routes the
// remaining divisions to the runtime fdiv implementation.
package spvlower

import (
	"github.com/cloudwego/spvlower/internal/builtin"
	"github.com/cloudwego/spvlower/internal/fp"
	"github.com/cloudwego/spvlower/internal/lower"
	"github.com/cloudwego/spvlower/internal/opts"
	"github.com/cloudwego/spvlower/ir"
)

type (
	// FloatControls are the floating-point execution modes of a shader.
	FloatControls = fp.Controls

	// ControlsProvider supplies the float controls of each function.
	ControlsProvider = fp.ControlsProvider

	// Width is a bitmask over 16, 32 and 64-bit floating lanes.
	Width = fp.Width

	// Emitter emits calls to runtime builtins.
	Emitter = builtin.Emitter

	// ContractStrategy selects how contraction flags are checked upstream.
	ContractStrategy = opts.ContractStrategy

	// Registry holds the passes available to a compiler driver.
	Registry = lower.Registry
)

const (
	W16 = fp.W16
	W32 = fp.W32
	W64 = fp.W64
)

const (
	ContractFirstOperand = opts.ContractFirstOperand
	ContractAllOperands  = opts.ContractAllOperands
)

// Pass is a configured algebraic transform, reusable across functions but not
// safe for concurrent use.
type Pass struct {
	p *lower.AlgebraTransform
}

// NewPass creates an algebraic transform with the given options.
func NewPass(options ...Option) *Pass {
	env := &lower.Env{Options: opts.GetDefaultOptions()}
	for _, fn := range options {
		fn(env)
	}
	return &Pass{p: lower.NewAlgebraPass(env)}
}

// Apply runs the transform on fn and reports whether fn was changed.
func (self *Pass) Apply(fn *ir.Func) (bool, error) {
	changed, err := self.p.Apply(fn)
	if err != nil {
		return changed, EDispatch(fn, err)
	}
	return changed, nil
}

// ApplyModule runs the transform on every function defined in m.
func (self *Pass) ApplyModule(m *ir.Module) (bool, error) {
	changed, fn, err := self.p.ApplyModule(m)
	if err != nil {
		return changed, EDispatch(fn, err)
	}
	return changed, nil
}

// Transform runs the algebraic transform once on fn.
func Transform(fn *ir.Func, options ...Option) (bool, error) {
	return NewPass(options...).Apply(fn)
}

// TransformModule runs the algebraic transform once on every function of m.
func TransformModule(m *ir.Module, options ...Option) (bool, error) {
	return NewPass(options...).ApplyModule(m)
}

// NewRegistry creates an empty pass registry.
func NewRegistry() *Registry {
	return lower.NewRegistry()
}

// RegisterPasses makes the passes of this package available in r. Compiler
// drivers call it once during initialization.
func RegisterPasses(r *Registry) {
	lower.RegisterPasses(r)
}

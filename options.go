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
	"fmt"

	"github.com/cloudwego/spvlower/internal/builtin"
	"github.com/cloudwego/spvlower/internal/fp"
	"github.com/cloudwego/spvlower/internal/lower"
	"github.com/cloudwego/spvlower/internal/opts"
)

// Option is the property setter function for the algebraic transform.
type Option func(*lower.Env)

// WithConstFolding enables or disables constant folding.
//
// Constant folding only runs for functions that flush denormals of at least
// one width, because that is the only case the generic optimizer gets wrong.
//
// The default value of this option is "true".
func WithConstFolding(enable bool) Option {
	return func(o *lower.Env) { o.Options.EnableConstFolding = enable }
}

// WithFloatOpt enables or disables the simplification of floating binary
// operators, including the lowering of divisions to the runtime fdiv.
//
// The default value of this option is "true".
func WithFloatOpt(enable bool) Option {
	return func(o *lower.Env) { o.Options.EnableFloatOpt = enable }
}

// WithContractStrategy controls which operands are followed when checking
// whether an addition may keep its contraction flag.
//
// The default value of this option is ContractFirstOperand.
func WithContractStrategy(s ContractStrategy) Option {
	if s != ContractFirstOperand && s != ContractAllOperands {
		panic(fmt.Sprintf("spvlower: invalid contraction strategy: %d", s))
	} else {
		return func(o *lower.Env) { o.Options.Contraction = s }
	}
}

// WithDebug makes the transform print every rewrite to stderr.
func WithDebug(enable bool) Option {
	return func(o *lower.Env) { o.Options.Debug = enable }
}

// WithFloatControls uses the same float controls for every function.
func WithFloatControls(fc FloatControls) Option {
	return func(o *lower.Env) { o.Controls = fp.Static(fc) }
}

// WithControlsProvider queries p for the float controls of each function.
func WithControlsProvider(p ControlsProvider) Option {
	if p == nil {
		panic("spvlower: nil controls provider")
	} else {
		return func(o *lower.Env) { o.Controls = p }
	}
}

// WithPureBuiltins replaces the set of builtins known to be free of side
// effects. Calls to other functions are never considered dead, and the
// default dispatcher refuses to emit calls to them.
func WithPureBuiltins(names ...string) Option {
	return func(o *lower.Env) { o.Lib = builtin.NewLibraryInfo(names...) }
}

// WithEmitter replaces the builtin call emitter used to lower divisions.
func WithEmitter(em Emitter) Option {
	if em == nil {
		panic("spvlower: nil emitter")
	} else {
		return func(o *lower.Env) { o.Emitter = em }
	}
}

// SetDefaultConstFolding sets the default constant folding switch for all
// passes created from now on.
//
// This value can also be configured with the `SPVLOWER_CONST_FOLDING`
// environment variable.
//
// Returns the old value.
func SetDefaultConstFolding(enable bool) bool {
	enable, opts.EnableConstFolding = opts.EnableConstFolding, enable
	return enable
}

// SetDefaultFloatOpt sets the default floating binary operator simplification
// switch for all passes created from now on.
//
// This value can also be configured with the `SPVLOWER_FLOAT_OPT`
// environment variable.
//
// Returns the old value.
func SetDefaultFloatOpt(enable bool) bool {
	enable, opts.EnableFloatOpt = opts.EnableFloatOpt, enable
	return enable
}

// SetDefaultContractStrategy sets the default contraction strategy for all
// passes created from now on.
//
// This value can also be configured with the `SPVLOWER_CONTRACT_STRATEGY`
// environment variable, as either "first" or "all".
//
// Returns the old value.
func SetDefaultContractStrategy(s ContractStrategy) ContractStrategy {
	s, opts.Contraction = opts.Contraction, s
	return s
}

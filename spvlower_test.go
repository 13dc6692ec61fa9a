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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/spvlower/debug"
	"github.com/cloudwego/spvlower/internal/builtin"
	"github.com/cloudwego/spvlower/ir"
)

func newShader() (*ir.Func, ir.Value) {
	m := ir.NewModule()
	fn := m.NewFunc("main", ir.TVoid, ir.TFloat, ir.TInt64)
	b := ir.NewBuilder(fn.NewBlock("entry"))
	x := b.FMul(m.ConstFloat(ir.TFloat, 1e-30), m.ConstFloat(ir.TFloat, 1e-15))
	y := b.FAdd(fn.Arg(0), x)
	z := b.FDiv(y, m.ConstFloat(ir.TFloat, 2))
	st := b.Store(z, fn.Arg(1))
	b.Ret()
	return fn, st
}

func TestTransform_FlushToZero(t *testing.T) {
	fn, st := newShader()
	changed, err := Transform(fn, WithFloatControls(FloatControls{DenormFlushToZero: W32}))
	require.NoError(t, err)
	require.True(t, changed)
	require.NoError(t, fn.Verify())

	/* the addition keeps a zero operand, the division becomes a call */
	call := fn.Instr(fn.Instr(st).Args[0])
	require.Equal(t, ir.OpCall, call.Op)
	require.Equal(t, "_Z4fdivff", call.Callee)
	add := fn.Instr(call.Args[0])
	assert.Equal(t, ir.OpFAdd, add.Op)
	assert.Equal(t, fn.Module.ConstFloat(ir.TFloat, 0), add.Args[1])
}

func TestTransform_NoFlush(t *testing.T) {
	fn, st := newShader()
	changed, err := Transform(fn, WithConstFolding(false))
	require.NoError(t, err)
	require.True(t, changed)

	/* nothing was folded, so the multiplication survives */
	call := fn.Instr(fn.Instr(st).Args[0])
	add := fn.Instr(call.Args[0])
	assert.Equal(t, ir.OpFAdd, add.Op)
	assert.Equal(t, ir.OpFMul, fn.Instr(add.Args[1]).Op)
}

func TestTransform_Disabled(t *testing.T) {
	fn, _ := newShader()
	src := fn.String()
	changed, err := Transform(fn,
		WithConstFolding(false),
		WithFloatOpt(false),
		WithFloatControls(FloatControls{DenormFlushToZero: W16 | W32 | W64}),
	)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, src, fn.String())
}

func TestTransform_DispatchError(t *testing.T) {
	fn, _ := newShader()
	_, err := Transform(fn, WithPureBuiltins("sqrt"))
	require.Error(t, err)

	/* check the error chain */
	var de DispatchError
	var ue builtin.UnknownError
	require.True(t, errors.As(err, &de))
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "main", de.Func)
	assert.Equal(t, "fdiv", ue.Name)
	assert.Equal(t, "DispatchError(@main): UnknownError(fdiv): no runtime implementation for (float, float)", err.Error())
	require.NoError(t, fn.Verify())
}

type controlsByName map[string]FloatControls

func (self controlsByName) FloatControls(fn *ir.Func) FloatControls {
	return self[fn.Name]
}

func TestTransformModule(t *testing.T) {
	m := ir.NewModule()
	for _, name := range []string{"vs", "fs"} {
		fn := m.NewFunc(name, ir.TVoid, ir.TInt64)
		b := ir.NewBuilder(fn.NewBlock("entry"))
		b.Store(b.FAdd(m.ConstFloat(ir.TDouble, 1e-300), m.ConstFloat(ir.TDouble, -1e-300)), fn.Arg(0))
		b.Ret()
	}

	/* only the fragment shader flushes denormals */
	fc := controlsByName{"fs": {DenormFlushToZero: W64}}
	changed, err := TransformModule(m, WithControlsProvider(fc), WithFloatOpt(false))
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, ir.OpFAdd, m.Funcs[0].Instr(m.Funcs[0].Entry().Ins[0]).Op)
	assert.Equal(t, ir.OpStore, m.Funcs[1].Instr(m.Funcs[1].Entry().Ins[0]).Op)
}

func TestTransformModule_DispatchError(t *testing.T) {
	m := ir.NewModule()
	for _, name := range []string{"vs", "fs"} {
		fn := m.NewFunc(name, ir.TVoid, ir.TFloat, ir.TInt64)
		b := ir.NewBuilder(fn.NewBlock("entry"))
		if name == "fs" {
			b.Store(b.FDiv(fn.Arg(0), m.ConstFloat(ir.TFloat, 3)), fn.Arg(1))
		}
		b.Ret()
	}

	/* the error names the function that could not be lowered */
	_, err := TransformModule(m, WithPureBuiltins("sqrt"))
	var de DispatchError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "fs", de.Func)
	require.NoError(t, m.Funcs[1].Verify())
}

func TestPass_Stats(t *testing.T) {
	fn, _ := newShader()
	s0 := debug.GetStats()
	_, err := NewPass(WithFloatControls(FloatControls{DenormFlushToZero: W32})).Apply(fn)
	require.NoError(t, err)
	s1 := debug.GetStats()
	assert.Equal(t, 1, s1.Folds.Constant-s0.Folds.Constant)
	assert.Equal(t, 1, s1.Rewrites.DivCall-s0.Rewrites.DivCall)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { WithContractStrategy(ContractStrategy(7)) })
	assert.Panics(t, func() { WithControlsProvider(nil) })
	assert.Panics(t, func() { WithEmitter(nil) })
	assert.NotPanics(t, func() { WithContractStrategy(ContractAllOperands) })
}

func TestOptions_SetDefault(t *testing.T) {
	old := SetDefaultFloatOpt(false)
	assert.False(t, SetDefaultFloatOpt(old))
	oldfold := SetDefaultConstFolding(false)
	assert.False(t, SetDefaultConstFolding(oldfold))
	olds := SetDefaultContractStrategy(ContractAllOperands)
	assert.Equal(t, ContractAllOperands, SetDefaultContractStrategy(olds))

	/* passes pick up the defaults when created */
	SetDefaultFloatOpt(false)
	defer SetDefaultFloatOpt(old)
	fn, _ := newShader()
	changed, err := Transform(fn)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	RegisterPasses(r)
	assert.Equal(t, []string{"llpc-spirv-lower-algebra-transform"}, r.Names())
	assert.Panics(t, func() { RegisterPasses(r) })
}

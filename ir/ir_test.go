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
    `testing`

    `github.com/davecgh/go-spew/spew`
    `github.com/stretchr/testify/require`
)

func newTestFunc(args ...Type) (*Func, *Builder) {
    m := NewModule()
    fn := m.NewFunc("main", TVoid, args...)
    return fn, NewBuilder(fn.NewBlock("entry"))
}

func TestValue_Encoding(t *testing.T) {
    v := mkvalue(K_inst, 12)
    require.True(t, v.IsInst())
    require.Equal(t, 12, v.Index())
    require.Equal(t, "%12", v.String())
    require.True(t, mkvalue(K_const, 3).IsConst())
    require.True(t, mkvalue(K_arg, 0).IsArg())
    require.True(t, Nil.IsNil())
    require.Equal(t, "nil", Nil.String())
}

func TestType_Predicates(t *testing.T) {
    v2f := VectorOf(TFloat, 2)
    require.True(t, TFloat.IsFP())
    require.False(t, v2f.IsFP())
    require.True(t, v2f.IsFPOrFPVector())
    require.False(t, TInt32.IsFPOrFPVector())
    require.Equal(t, 2, v2f.NumLanes())
    require.Equal(t, 64, v2f.Size())
    require.Equal(t, "<2 x float>", v2f.String())
    require.Equal(t, TFloat, v2f.Scalar())
    require.Panics(t, func() { VectorOf(v2f, 2) })
}

func TestConst_Interning(t *testing.T) {
    m := NewModule()
    a := m.ConstFloat(TFloat, 1.5)
    b := m.ConstFloat(TFloat, 1.5)
    c := m.ConstFloat(TDouble, 1.5)
    require.Equal(t, a, b)
    require.NotEqual(t, a, c)
    require.Equal(t, m.ConstZero(VectorOf(THalf, 4)), m.ConstBits(VectorOf(THalf, 4), 0, 0, 0, 0))
    require.Equal(t, uint64(0xffffffff), m.Const(m.ConstInt(TInt32, -1)).Bits[0])
    require.Equal(t, int64(-1), m.Const(m.ConstInt(TInt32, -1)).Int(0))
}

func TestConst_HalfRoundsOnce(t *testing.T) {
    m := NewModule()
    require.Equal(t, []uint64 { 0x3c01 }, m.Const(m.ConstFloat(THalf, 1 + 0x1p-11 + 0x1p-40)).Bits)
    require.Equal(t, []uint64 { 0x3c00 }, m.Const(m.ConstFloat(THalf, 1 + 0x1p-11)).Bits)
    require.Equal(t, []uint64 { 0xbc01 }, m.Const(m.ConstFloat(THalf, -1 - 0x1p-11 - 0x1p-40)).Bits)
    require.Equal(t, []uint64 { 0x7c00 }, m.Const(m.ConstFloat(THalf, 1e10)).Bits)
}

func TestConst_Bool(t *testing.T) {
    m := NewModule()
    c := m.Const(m.ConstInt(TBool, 1))
    require.Equal(t, int64(-1), c.Int(0))
    require.Equal(t, "true", c.String())
    require.Equal(t, int64(0), m.Const(m.ConstInt(TBool, 0)).Int(0))
}

func TestConst_IsZero(t *testing.T) {
    m := NewModule()
    require.True(t, m.Const(m.ConstFloat(TFloat, 0)).IsZero())
    require.True(t, m.Const(m.ConstBits(TFloat, 0x80000000)).IsZero())
    require.True(t, m.Const(m.ConstBits(THalf, 0x8000)).IsZero())
    require.False(t, m.Const(m.ConstBits(TFloat, 1)).IsZero())
    require.True(t, m.Const(m.ConstZero(VectorOf(TFloat, 2))).IsZero())
    require.False(t, m.Const(m.ConstBits(VectorOf(TFloat, 2), 0, 0x80000000)).IsZero())
}

func TestConst_String(t *testing.T) {
    m := NewModule()
    require.Equal(t, "1.0", m.Const(m.ConstFloat(TFloat, 1)).String())
    require.Equal(t, "-0.0", m.Const(m.ConstBits(TDouble, 1 << 63)).String())
    require.Equal(t, "0.5", m.Const(m.ConstFloat(THalf, 0.5)).String())
    require.Equal(t, "zeroinitializer", m.Const(m.ConstZero(VectorOf(TFloat, 2))).String())
    require.Equal(t, "<float 1.0, float 2.0>", m.Const(m.ConstFloat(VectorOf(TFloat, 2), 1, 2)).String())
}

func TestFunc_ReplaceAllUsesWith(t *testing.T) {
    fn, b := newTestFunc(TFloat, TFloat, TInt64)
    x := b.FAdd(fn.Arg(0), fn.Arg(0))
    y := b.FMul(x, x)
    b.Store(y, fn.Arg(2))
    require.Equal(t, 2, fn.Instr(x).NumUsers())

    /* both operand slots move to the new value */
    fn.ReplaceAllUsesWith(x, fn.Arg(1))
    require.True(t, fn.Instr(x).UseEmpty())
    require.Equal(t, []Value { fn.Arg(1), fn.Arg(1) }, fn.Instr(y).Args)
    require.NoError(t, fn.Verify())

    /* replacing with another instruction moves the user entries */
    z := b.FSub(fn.Arg(0), fn.Arg(1))
    fn.ReplaceAllUsesWith(y, z)
    require.Equal(t, 1, fn.Instr(z).NumUsers())
    require.NoError(t, fn.Verify())
}

func TestFunc_EraseAndReuse(t *testing.T) {
    fn, b := newTestFunc(TFloat, TInt64)
    x := b.FAdd(fn.Arg(0), fn.Arg(0))
    y := b.FNeg(x)
    b.Store(y, fn.Arg(1))

    /* erasing an instruction that is still used is a bug */
    require.Panics(t, func() { fn.Erase(x) })

    /* erase the negation, its operand loses the user */
    fn.ReplaceAllUsesWith(y, x)
    fn.Erase(y)
    require.False(t, fn.IsLive(y))
    require.Equal(t, 1, fn.Instr(x).NumUsers())
    require.NoError(t, fn.Verify())

    /* the freed slot is reused */
    z := b.FMul(x, x)
    require.Equal(t, y, z)
    require.Equal(t, 3, fn.NumInstrs())
    require.NoError(t, fn.Verify())
}

func TestFunc_InsertBefore(t *testing.T) {
    fn, b := newTestFunc(TFloat, TInt64)
    x := b.FAdd(fn.Arg(0), fn.Arg(0))
    s := b.Store(x, fn.Arg(1))
    y := fn.InsertBefore(s, &Instr { Op: OpFNeg, Type: TFloat, Args: []Value { x } })
    require.Equal(t, []Value { x, y, s }, fn.Entry().Ins)
    require.Equal(t, fn.Entry(), fn.Instr(y).Block())
    require.NoError(t, fn.Verify())
}

func TestFunc_VerifyDetectsCorruption(t *testing.T) {
    fn, b := newTestFunc(TFloat, TInt64)
    x := b.FAdd(fn.Arg(0), fn.Arg(0))
    y := b.FNeg(x)
    b.Store(y, fn.Arg(1))
    require.NoError(t, fn.Verify())

    /* bypass the mutation primitives */
    fn.Instr(y).Args[0] = fn.Arg(0)
    require.Error(t, fn.Verify())
}

func TestFunc_String(t *testing.T) {
    fn, b := newTestFunc(TFloat, TInt64)
    x := b.Binary(OpFAdd, FMContract | FMReassoc, fn.Arg(0), fn.Module.ConstFloat(TFloat, 1))
    b.Store(x, fn.Arg(1))
    b.Ret()
    expect := "define void @main(float %a0, i64 %a1) {\n" +
        "entry:\n" +
        "    %1 = fadd reassoc contract float %a0, float 1.0\n" +
        "    store float %1, i64 %a1\n" +
        "    ret void\n" +
        "}"
    require.Equal(t, expect, fn.String())
}

type pureSet map[string]bool

func (self pureSet) IsPure(name string) bool {
    return self[name]
}

func TestDeadcode_IsTriviallyDead(t *testing.T) {
    fn, b := newTestFunc(TFloat, TInt64)
    x := b.FAdd(fn.Arg(0), fn.Arg(0))
    y := b.FNeg(x)
    p := b.Call("sqrt", TFloat, fn.Arg(0))
    q := b.Call("side_effect", TFloat, fn.Arg(0))
    s := b.Store(x, fn.Arg(1))
    r := b.Ret()
    li := pureSet { "sqrt": true }
    require.False(t, IsTriviallyDead(fn, x, li))
    require.True(t, IsTriviallyDead(fn, y, li))
    require.True(t, IsTriviallyDead(fn, p, li))
    require.False(t, IsTriviallyDead(fn, q, li))
    require.False(t, IsTriviallyDead(fn, p, nil))
    require.False(t, IsTriviallyDead(fn, s, li))
    require.False(t, IsTriviallyDead(fn, r, li))
}

func TestDeadcode_RecursivelyDeleteDead(t *testing.T) {
    fn, b := newTestFunc(TFloat, TInt64)
    x := b.FAdd(fn.Arg(0), fn.Arg(0))
    y := b.FMul(x, x)
    z := b.FNeg(y)
    k := b.FSub(x, fn.Arg(0))
    b.Store(k, fn.Arg(1))

    /* x survives because the store still needs it through k */
    require.Equal(t, 2, RecursivelyDeleteDead(fn, z, nil))
    require.False(t, fn.IsLive(y))
    require.True(t, fn.IsLive(x))
    require.Equal(t, 0, RecursivelyDeleteDead(fn, x, nil))
    if err := fn.Verify(); err != nil {
        spew.Dump(fn.Entry().Ins)
        require.NoError(t, err)
    }
}

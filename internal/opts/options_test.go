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

package opts

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContractStrategy(t *testing.T) {
	s, ok := ParseContractStrategy("all")
	require.True(t, ok)
	assert.Equal(t, ContractAllOperands, s)
	s, ok = ParseContractStrategy("first")
	require.True(t, ok)
	assert.Equal(t, ContractFirstOperand, s)
	_, ok = ParseContractStrategy("First")
	assert.False(t, ok)
	assert.Equal(t, "invalid", ContractStrategy(9).String())
}

func TestParseOrDefault(t *testing.T) {
	const key = "SPVLOWER_TEST_OPTION"
	defer os.Unsetenv(key)
	assert.True(t, parseBoolOrDefault(key, true))
	assert.Equal(t, ContractAllOperands, parseStrategyOrDefault(key, ContractAllOperands))

	/* explicit values */
	require.NoError(t, os.Setenv(key, "0"))
	assert.False(t, parseBoolOrDefault(key, true))
	require.NoError(t, os.Setenv(key, "first"))
	assert.Equal(t, ContractFirstOperand, parseStrategyOrDefault(key, ContractAllOperands))
	assert.Panics(t, func() { parseBoolOrDefault(key, true) })
	require.NoError(t, os.Setenv(key, "maybe"))
	assert.Panics(t, func() { parseStrategyOrDefault(key, ContractFirstOperand) })
}

func TestOptions_CanFold(t *testing.T) {
	o := Options{EnableConstFolding: true}
	assert.True(t, o.CanFold(2))
	assert.False(t, o.CanFold(0))
	o.EnableConstFolding = false
	assert.False(t, o.CanFold(7))
}

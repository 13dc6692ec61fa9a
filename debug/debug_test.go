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

package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cloudwego/spvlower/internal/lower"
)

func TestGetStats(t *testing.T) {
	s0 := GetStats()
	lower.FoldCount++
	lower.DeadCount += 3
	s1 := GetStats()
	assert.Equal(t, 1, s1.Folds.Constant-s0.Folds.Constant)
	assert.Equal(t, 3, s1.DeadCode-s0.DeadCode)
	assert.Equal(t, s0.Rewrites, s1.Rewrites)
}

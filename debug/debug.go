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
	"github.com/cloudwego/spvlower/internal/lower"
)

// A Stats records statistics about the algebraic transform.
type Stats struct {
	Folds    FoldStats
	Rewrites RewriteStats
	DeadCode int
}

// A FoldStats records how many instructions were replaced by constants.
type FoldStats struct {
	Constant   int
	HalfUnpack int
}

// A RewriteStats records how many operators were simplified or lowered.
type RewriteStats struct {
	Identity int
	DivCall  int
	Contract int
}

// GetStats returns process-wide statistics of the algebraic transform.
func GetStats() Stats {
	c := lower.GetCounters()
	return Stats{
		Folds: FoldStats{
			Constant:   int(c.Fold),
			HalfUnpack: int(c.Unpack),
		},
		Rewrites: RewriteStats{
			Identity: int(c.Identity),
			DivCall:  int(c.DivCall),
			Contract: int(c.Contract),
		},
		DeadCode: int(c.Dead),
	}
}

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

// ContractStrategy selects how far back the contraction analysis looks.
type ContractStrategy uint8

const (
	// ContractFirstOperand follows only the first operand of every binary operator.
	ContractFirstOperand ContractStrategy = iota

	// ContractAllOperands follows every operand; any forbidding operator wins.
	ContractAllOperands
)

func ParseContractStrategy(s string) (ContractStrategy, bool) {
	switch s {
	case "first":
		return ContractFirstOperand, true
	case "all":
		return ContractAllOperands, true
	default:
		return 0, false
	}
}

func (self ContractStrategy) String() string {
	switch self {
	case ContractFirstOperand:
		return "first"
	case ContractAllOperands:
		return "all"
	default:
		return "invalid"
	}
}

type Options struct {
	EnableConstFolding bool
	EnableFloatOpt     bool
	Contraction        ContractStrategy
	Debug              bool
}

// CanFold reports whether constant folding runs for a function whose denormal
// flush mask is ftz.
func (self *Options) CanFold(ftz uint8) bool {
	return self.EnableConstFolding && ftz != 0
}

func GetDefaultOptions() Options {
	return Options{
		EnableConstFolding: EnableConstFolding,
		EnableFloatOpt:     EnableFloatOpt,
		Contraction:        Contraction,
		Debug:              Debug,
	}
}

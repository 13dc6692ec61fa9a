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
	"strconv"
)

const (
	_DefaultConstFolding = true // fold constants when denormals are flushed
	_DefaultFloatOpt     = true // simplify floating binary operators
	_DefaultDebug        = false
)

var (
	EnableConstFolding = parseBoolOrDefault("SPVLOWER_CONST_FOLDING", _DefaultConstFolding)
	EnableFloatOpt     = parseBoolOrDefault("SPVLOWER_FLOAT_OPT", _DefaultFloatOpt)
	Contraction        = parseStrategyOrDefault("SPVLOWER_CONTRACT_STRATEGY", ContractFirstOperand)
	Debug              = parseBoolOrDefault("SPVLOWER_DEBUG", _DefaultDebug)
)

func parseBoolOrDefault(key string, def bool) bool {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, err := strconv.ParseBool(env); err != nil {
		panic("spvlower: invalid value for " + key)
	} else {
		return val
	}
}

func parseStrategyOrDefault(key string, def ContractStrategy) ContractStrategy {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, ok := ParseContractStrategy(env); !ok {
		panic("spvlower: invalid value for " + key)
	} else {
		return val
	}
}

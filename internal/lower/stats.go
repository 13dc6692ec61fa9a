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
    `sync/atomic`
)

var (
    FoldCount     uint64
    UnpackCount   uint64
    IdentityCount uint64
    DivCallCount  uint64
    ContractCount uint64
    DeadCount     uint64
)

func addcount(p *uint64, n int) {
    atomic.AddUint64(p, uint64(n))
}

func loadcount(p *uint64) uint64 {
    return atomic.LoadUint64(p)
}

// Counters is a snapshot of the rewrite counters.
type Counters struct {
    Fold     uint64
    Unpack   uint64
    Identity uint64
    DivCall  uint64
    Contract uint64
    Dead     uint64
}

func GetCounters() Counters {
    return Counters {
        Fold     : loadcount(&FoldCount),
        Unpack   : loadcount(&UnpackCount),
        Identity : loadcount(&IdentityCount),
        DivCall  : loadcount(&DivCallCount),
        Contract : loadcount(&ContractCount),
        Dead     : loadcount(&DeadCount),
    }
}

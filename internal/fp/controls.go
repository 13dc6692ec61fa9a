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

package fp

import (
    `strings`

    `github.com/cloudwego/spvlower/ir`
)

// Width is a bitmask over floating lane widths, in the encoding used by the
// shader resource usage records.
type Width uint8

const (
    W16 Width = 1 << iota
    W32
    W64
)

const (
    WAll = W16 | W32 | W64
)

// WidthOf returns the width bit of a floating scalar or vector type, or zero
// for anything else.
func WidthOf(t ir.Type) Width {
    switch t.Elem {
        case ir.Half   : return W16
        case ir.Float  : return W32
        case ir.Double : return W64
        default        : return 0
    }
}

func (self Width) Has(w Width) bool {
    return w != 0 && self & w == w
}

func (self Width) String() string {
    if self == 0 {
        return "none"
    }

    /* dump every width */
    buf := make([]string, 0, 3)
    if self & W16 != 0 { buf = append(buf, "16") }
    if self & W32 != 0 { buf = append(buf, "32") }
    if self & W64 != 0 { buf = append(buf, "64") }
    return strings.Join(buf, "|")
}

// Controls are the floating-point execution modes a shader requested.
type Controls struct {
    DenormFlushToZero        Width
    SignedZeroInfNanPreserve bool
    RoundingModeRTE          Width
    RoundingModeRTZ          Width
}

// FlushesDenormals reports whether denormals of type t are flushed to zero.
func (self Controls) FlushesDenormals(t ir.Type) bool {
    return self.DenormFlushToZero.Has(WidthOf(t))
}

// Exact reports whether any mode forbids value-changing identities.
func (self Controls) Exact() bool {
    return self.DenormFlushToZero != 0 || self.SignedZeroInfNanPreserve
}

// ControlsProvider supplies the float controls of a function.
type ControlsProvider interface {
    FloatControls(fn *ir.Func) Controls
}

// Static is a ControlsProvider that returns the same controls for every function.
type Static Controls

func (self Static) FloatControls(_ *ir.Func) Controls {
    return Controls(self)
}

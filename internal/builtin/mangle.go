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

package builtin

import (
    `strconv`
    `strings`

    `github.com/cloudwego/spvlower/ir`
)

const (
    _BaseDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

func scalarcode(t ir.Type) string {
    switch t.Elem {
        case ir.I1     : return "b"
        case ir.I16    : return "s"
        case ir.I32    : return "i"
        case ir.I64    : return "l"
        case ir.Half   : return "Dh"
        case ir.Float  : return "f"
        case ir.Double : return "d"
        default        : panic("builtin: type cannot be mangled: " + t.String())
    }
}

func seqid(i int) string {
    if i == 0 {
        return "S_"
    }

    /* base-36 sequence number, offset by one */
    var buf []byte
    for i--; ; i /= 36 {
        buf = append([]byte { _BaseDigits[i % 36] }, buf...)
        if i < 36 {
            break
        }
    }
    return "S" + string(buf) + "_"
}

// Mangle derives the runtime symbol of a builtin from its base name and its
// argument types, using Itanium-style encoding. Vector types are substitutable:
// the second occurrence of a vector type is encoded as a back reference.
func Mangle(name string, args []ir.Type) string {
    var subs []ir.Type
    var sb strings.Builder

    /* prefix and the source name */
    sb.WriteString("_Z")
    sb.WriteString(strconv.Itoa(len(name)))
    sb.WriteString(name)

    /* functions without arguments */
    if len(args) == 0 {
        sb.WriteString("v")
        return sb.String()
    }

    /* encode every argument */
    for _, t := range args {
        if !t.IsVector() {
            sb.WriteString(scalarcode(t))
            continue
        }

        /* back references to previously seen vector types */
        found := false
        for i, v := range subs {
            if v == t {
                sb.WriteString(seqid(i))
                found = true
                break
            }
        }

        /* first occurrence */
        if !found {
            sb.WriteString("Dv")
            sb.WriteString(strconv.Itoa(t.NumLanes()))
            sb.WriteString("_")
            sb.WriteString(scalarcode(t.Scalar()))
            subs = append(subs, t)
        }
    }
    return sb.String()
}

// Demangle extracts the base name from a mangled builtin symbol.
func Demangle(sym string) (string, bool) {
    if !strings.HasPrefix(sym, "_Z") {
        return sym, false
    }

    /* parse the name length */
    i := 2
    for i < len(sym) && sym[i] >= '0' && sym[i] <= '9' {
        i++
    }

    /* extract the name */
    if n, err := strconv.Atoi(sym[2:i]); err != nil || n == 0 || i + n > len(sym) {
        return sym, false
    } else {
        return sym[i:i + n], true
    }
}

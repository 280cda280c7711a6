// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package axona

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the parsed type of a header parameter value.
type Kind int

const (
	KindNull Kind = iota // Key present with no value
	KindInt
	KindFloat
	KindText
)

// Value is a single parsed header parameter. Parsing attempts integer, then
// float, and falls back to the raw string.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

func intValue(i int64) Value     { return Value{kind: KindInt, i: i} }
func floatValue(f float64) Value { return Value{kind: KindFloat, f: f} }
func textValue(s string) Value   { return Value{kind: KindText, s: s} }

// Kind reports the parsed type of the value.
func (v Value) Kind() Kind { return v.kind }

// AsInt returns the value as an integer.
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, &FormatError{Msg: fmt.Sprintf("expected integer value, got %s", v.kind)}
	}
	return v.i, nil
}

// AsFloat returns the value as a float. Integer values are widened.
func (v Value) AsFloat() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindInt:
		return float64(v.i), nil
	default:
		return 0, &FormatError{Msg: fmt.Sprintf("expected numeric value, got %s", v.kind)}
	}
}

// AsText returns the value as a string.
func (v Value) AsText() (string, error) {
	if v.kind != KindText {
		return "", &FormatError{Msg: fmt.Sprintf("expected text value, got %s", v.kind)}
	}
	return v.s, nil
}

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// ParameterBlock is the typed key/value mapping parsed from a text header.
// Keys are unique; re-parsing a key overwrites the earlier value.
type ParameterBlock map[string]Value

// ParseParams parses free-text "key value" lines into a ParameterBlock.
// Any text is accepted: unparseable numerics fall through to text values,
// and a key with no trailing text maps to a null value.
func ParseParams(text string) ParameterBlock {
	params := make(ParameterBlock)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, rest, found := strings.Cut(line, " ")
		if !found {
			params[key] = Value{}
			continue
		}

		rest = strings.TrimSpace(rest)
		if i, err := strconv.ParseInt(rest, 10, 64); err == nil {
			params[key] = intValue(i)
		} else if f, err := strconv.ParseFloat(rest, 64); err == nil {
			params[key] = floatValue(f)
		} else {
			params[key] = textValue(rest)
		}
	}

	return params
}

// withDefaults returns a copy of the block with the given defaults filled in
// for absent keys. Each decoder declares its recognized optional parameters
// in one table rather than defaulting inline at each use site.
func (p ParameterBlock) withDefaults(defaults map[string]Value) ParameterBlock {
	merged := make(ParameterBlock, len(p)+len(defaults))
	for key, v := range defaults {
		merged[key] = v
	}
	for key, v := range p {
		merged[key] = v
	}
	return merged
}

func (p ParameterBlock) intParam(key string) (int, error) {
	v, ok := p[key]
	if !ok {
		return 0, &FormatError{Msg: fmt.Sprintf("missing required parameter %q", key)}
	}
	i, err := v.AsInt()
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", key, err)
	}
	return int(i), nil
}

func (p ParameterBlock) floatParam(key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, &FormatError{Msg: fmt.Sprintf("missing required parameter %q", key)}
	}
	f, err := v.AsFloat()
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", key, err)
	}
	return f, nil
}

// hertz parses a frequency parameter that may be stored either as a bare
// number or as a "<number> hz" string.
func (p ParameterBlock) hertz(key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, &FormatError{Msg: fmt.Sprintf("missing required parameter %q", key)}
	}
	if v.kind == KindInt || v.kind == KindFloat {
		return v.AsFloat()
	}
	s, err := v.AsText()
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", key, err)
	}
	fields := strings.Fields(s)
	if len(fields) > 1 && !strings.EqualFold(fields[1], "hz") {
		return 0, &FormatError{Msg: fmt.Sprintf("parameter %q: unit must be \"hz\", got %q", key, fields[1])}
	}
	f, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, &FormatError{Msg: fmt.Sprintf("parameter %q: unparseable frequency %q", key, s)}
	}
	return f, nil
}

// hertzUnit parses a "<number> hz" frequency parameter. Unlike hertz, the
// unit token is mandatory.
func (p ParameterBlock) hertzUnit(key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, &FormatError{Msg: fmt.Sprintf("missing required parameter %q", key)}
	}
	s, err := v.AsText()
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", key, err)
	}
	fields := strings.Fields(s)
	if len(fields) < 2 || !strings.EqualFold(fields[1], "hz") {
		return 0, &FormatError{Msg: fmt.Sprintf("parameter %q: unit must be \"hz\", got %q", key, s)}
	}
	f, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, &FormatError{Msg: fmt.Sprintf("parameter %q: unparseable frequency %q", key, s)}
	}
	return f, nil
}

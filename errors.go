// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package axona

import "fmt"

// ConfigError indicates the dataset was addressed incorrectly before any
// decoding started, e.g. the root file does not have the .set extension.
type ConfigError struct {
	Path string
	Msg  string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// FormatError indicates a file violated the Axona dataset format: a missing
// data_start sentinel, a trailer mismatch, a mandatory header parameter that
// is absent or of the wrong kind, or a record count mismatch. There is no
// checksum in the format, so the trailer check is the primary corruption
// detector.
type FormatError struct {
	File string
	Msg  string
}

func (e *FormatError) Error() string {
	if e.File == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}

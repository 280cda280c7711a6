// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package axona_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeSetFile writes a minimal root .set file. Later lines override the
// defaults, so tests can tweak e.g. tracked_spots.
func writeSetFile(t *testing.T, dir, base string, extra ...string) string {
	t.Helper()

	lines := append([]string{
		"trial_date Monday, 3 Mar 2025",
		"ADC_fullscale_mv 1500",
		"duration 600",
		"tracked_spots 1",
	}, extra...)

	path := filepath.Join(dir, base+".set")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\r\n")+"\r\n"), 0o644))
	return path
}

// writeBinaryFile writes an Axona binary file: text header, data_start
// sentinel, payload, data_end trailer.
func writeBinaryFile(t *testing.T, path string, header []string, payload []byte) {
	t.Helper()

	var buf bytes.Buffer
	for _, line := range header {
		buf.WriteString(line)
		buf.WriteString("\r\n")
	}
	buf.WriteString("data_start")
	buf.Write(payload)
	buf.WriteString("\r\ndata_end\r\n")

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func be32(v uint32) []byte { return binary.BigEndian.AppendUint32(nil, v) }

func be16(v int16) []byte { return binary.BigEndian.AppendUint16(nil, uint16(v)) }

func le16(v int16) []byte { return binary.LittleEndian.AppendUint16(nil, uint16(v)) }

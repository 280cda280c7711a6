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
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderScanner(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("foo 1\nbar 2\ndata_startXYZ"))

	params, err := newHeaderScanner(r).scan()
	require.NoError(t, err)

	foo, err := params["foo"].AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(1), foo)

	bar, err := params["bar"].AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(2), bar)

	// The cursor must stand at the first payload byte.
	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "XYZ", string(rest))
}

func TestHeaderScannerMissingSentinel(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("foo 1\nbar 2\n"))

	_, err := newHeaderScanner(r).scan()

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Msg, "data_start")
}

func TestVerifyTrailer(t *testing.T) {
	assert.NoError(t, verifyTrailer(strings.NewReader("data_end")))
	assert.NoError(t, verifyTrailer(strings.NewReader("\r\ndata_end\r\n")))

	var formatErr *FormatError
	assert.True(t, errors.As(verifyTrailer(strings.NewReader("data_enc")), &formatErr))
	assert.True(t, errors.As(verifyTrailer(strings.NewReader("")), &formatErr))
	assert.True(t, errors.As(verifyTrailer(strings.NewReader("data_en")), &formatErr))
}

func TestReadPayloadShortRead(t *testing.T) {
	_, err := readPayload(strings.NewReader("abc"), 8)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestDecodeIntegers(t *testing.T) {
	assert.Equal(t, uint64(96000), decodeUintBE([]byte{0x00, 0x01, 0x77, 0x00}))
	assert.Equal(t, int64(1023), decodeIntBE([]byte{0x03, 0xff}))
	assert.Equal(t, int64(-1), decodeIntBE([]byte{0xff, 0xff}))
	assert.Equal(t, int64(-128), decodeIntLE([]byte{0x80}))
	assert.Equal(t, int64(-32768), decodeIntLE([]byte{0x00, 0x80}))
	assert.Equal(t, int64(16384), decodeIntLE([]byte{0x00, 0x40}))
}

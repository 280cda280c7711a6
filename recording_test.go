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
	"path/filepath"
	"testing"

	"github.com/OpenPSG/axona"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAll(t *testing.T) {
	dir := t.TempDir()
	path := writeSetFile(t, dir, "session",
		"gain_ch_4 1000",
		"EEG_ch_1 5",
		"mode_ch_5 0",
		"b_in_ch_5 2",
		"ref_2 7",
		"gain_ch_5 100",
	)

	payload := buildSpikePayload([]uint32{96000}, 1, func(_, _, _ int) byte { return 64 }, 4)
	writeBinaryFile(t, filepath.Join(dir, "session.1"), []string{
		"num_chans 1",
		"num_spikes 1",
		"samples_per_spike 4",
	}, payload)

	writeBinaryFile(t, filepath.Join(dir, "session.eeg"), []string{
		"num_EEG_samples 2",
		"sample_rate 250.0 hz",
		"bytes_per_sample 1",
		"num_chans 1",
	}, []byte{0, 64})

	writeBinaryFile(t, filepath.Join(dir, "session.pos"), trackingHeader,
		buildPositionPayload([]uint32{0, 50}, [][]int16{{200, 400}, {100, 100}}))

	ds, err := axona.Open(path)
	require.NoError(t, err)

	rec, err := ds.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, 600.0, rec.Duration)
	require.Len(t, rec.SpikeTrains, 1)
	require.Len(t, rec.Tracking, 1)
	require.Len(t, rec.AnalogSignals, 1)
	assert.Equal(t, []float64{1}, rec.SpikeTrains[0].Times)
}

func TestReadAllWithoutTracking(t *testing.T) {
	dir := t.TempDir()
	path := writeSetFile(t, dir, "session",
		"gain_ch_4 1000",
	)

	payload := buildSpikePayload([]uint32{0}, 1, func(_, _, _ int) byte { return 1 }, 4)
	writeBinaryFile(t, filepath.Join(dir, "session.1"), []string{
		"num_chans 1",
		"num_spikes 1",
		"samples_per_spike 4",
	}, payload)

	ds, err := axona.Open(path)
	require.NoError(t, err)

	// A missing position file is a warning, not an error: spike and analog
	// results still come back.
	rec, err := ds.ReadAll()
	require.NoError(t, err)

	assert.Nil(t, rec.Tracking)
	require.Len(t, rec.SpikeTrains, 1)
	assert.Empty(t, rec.AnalogSignals)
}

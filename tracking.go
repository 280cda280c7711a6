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
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// missingCoord is the hardware's "no detection" marker in raw position data.
const missingCoord = 1023

// bytesPerPixelCount is the width of the two fixed pixel-count fields that
// trail every position record regardless of the tracked spot count.
const bytesPerPixelCount = 4

// ReadTracking decodes the <base>.pos position file into one TrackingStream
// per tracked spot. The underlying error satisfies errors.Is(err,
// fs.ErrNotExist) when the dataset has no position file.
func (d *Dataset) ReadTracking() ([]TrackingStream, error) {
	path := filepath.Join(d.dir, d.base+".pos")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening position file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	params, err := newHeaderScanner(r).scan()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	sampleRate, err := params.hertzUnit("sample_rate")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// Required by the format, though the decode itself does not use it.
	if _, err := params.floatParam("EEG_samples_per_position"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	numSamples, err := params.intParam("num_pos_samples")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	bytesPerTimestamp, err := params.intParam("bytes_per_timestamp")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	bytesPerCoord, err := params.intParam("bytes_per_coord")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	timebase, err := params.hertz("timebase")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	pixelsPerMetre, err := params.floatParam("pixels_per_metre")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// Record layout: t, x1, y1, ..., xn, yn, numpix1, numpix2.
	coordsPerRecord := 2 * d.trackedSpots
	recordSize := bytesPerTimestamp + coordsPerRecord*bytesPerCoord + 2*bytesPerPixelCount

	payload, err := readPayload(r, numSamples*recordSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := verifyTrailer(r); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	times := make([]float64, numSamples)
	coords := make([][]float64, coordsPerRecord)
	for i := range coords {
		coords[i] = make([]float64, numSamples)
	}

	for rec := 0; rec < numSamples; rec++ {
		off := rec * recordSize
		times[rec] = float64(decodeIntBE(payload[off:off+bytesPerTimestamp])) / timebase
		off += bytesPerTimestamp

		for c := 0; c < coordsPerRecord; c++ {
			raw := decodeIntBE(payload[off : off+bytesPerCoord])
			off += bytesPerCoord
			if raw == missingCoord {
				coords[c][rec] = math.NaN()
			} else {
				coords[c][rec] = float64(raw) / pixelsPerMetre
			}
		}
		// The two trailing pixel-count fields are skipped.
	}

	streams := make([]TrackingStream, d.trackedSpots)
	for i := range streams {
		streams[i] = TrackingStream{
			Name:       fmt.Sprintf("tracking_xy%d", i),
			Times:      times,
			X:          coords[2*i],
			Y:          coords[2*i+1],
			SampleRate: sampleRate,
			Params:     params,
		}
	}
	return streams, nil
}

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
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Optional spike-file header parameters and their defaults.
var spikeDefaults = map[string]Value{
	"num_spikes":          intValue(0),
	"num_chans":           intValue(1),
	"bytes_per_timestamp": intValue(4),
	"bytes_per_sample":    intValue(1),
	"samples_per_spike":   intValue(50),
	"timebase":            textValue("96000 hz"),
	"rawrate":             intValue(48000),
}

// leftSweep is the fixed pre-trigger window of a spike waveform in seconds.
const leftSweep = 0.2e-3

// ReadSpikeTrains decodes every channel-group spike file of the dataset, one
// SpikeTrain per group, in sorted filename order.
func (d *Dataset) ReadSpikeTrains() ([]SpikeTrain, error) {
	trains := make([]SpikeTrain, 0, len(d.groups))
	for _, group := range d.groups {
		train, err := d.readSpikeFile(group)
		if err != nil {
			return nil, err
		}
		trains = append(trains, train)
	}
	return trains, nil
}

func (d *Dataset) readSpikeFile(group ChannelGroup) (SpikeTrain, error) {
	// The gain lookup is keyed by the file's numeric suffix, which for a
	// conventionally named dataset equals the discovery-order group id.
	groupIndex, err := strconv.Atoi(strings.TrimPrefix(filepath.Ext(group.Filename), "."))
	if err != nil {
		return SpikeTrain{}, &FormatError{File: group.Filename, Msg: "non-numeric channel group suffix"}
	}

	f, err := os.Open(group.Filename)
	if err != nil {
		return SpikeTrain{}, fmt.Errorf("error opening spike file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	params, err := newHeaderScanner(r).scan()
	if err != nil {
		return SpikeTrain{}, fmt.Errorf("%s: %w", group.Filename, err)
	}
	params = params.withDefaults(spikeDefaults)

	numSpikes, err := params.intParam("num_spikes")
	if err != nil {
		return SpikeTrain{}, fmt.Errorf("%s: %w", group.Filename, err)
	}
	numChans, err := params.intParam("num_chans")
	if err != nil {
		return SpikeTrain{}, fmt.Errorf("%s: %w", group.Filename, err)
	}
	bytesPerTimestamp, err := params.intParam("bytes_per_timestamp")
	if err != nil {
		return SpikeTrain{}, fmt.Errorf("%s: %w", group.Filename, err)
	}
	bytesPerSample, err := params.intParam("bytes_per_sample")
	if err != nil {
		return SpikeTrain{}, fmt.Errorf("%s: %w", group.Filename, err)
	}
	samplesPerSpike, err := params.intParam("samples_per_spike")
	if err != nil {
		return SpikeTrain{}, fmt.Errorf("%s: %w", group.Filename, err)
	}
	timebase, err := params.hertz("timebase")
	if err != nil {
		return SpikeTrain{}, fmt.Errorf("%s: %w", group.Filename, err)
	}
	samplingRate, err := params.hertz("rawrate")
	if err != nil {
		return SpikeTrain{}, fmt.Errorf("%s: %w", group.Filename, err)
	}

	// Each record is one big-endian timestamp followed by one channel's
	// samples; the timestamp is repeated for every channel of a spike.
	recordSize := bytesPerTimestamp + samplesPerSpike*bytesPerSample
	recordCount := numSpikes * numChans

	payload, err := readPayload(r, recordCount*recordSize)
	if err != nil {
		return SpikeTrain{}, fmt.Errorf("%s: %w", group.Filename, err)
	}
	if err := verifyTrailer(r); err != nil {
		return SpikeTrain{}, fmt.Errorf("%s: %w", group.Filename, err)
	}

	times := make([]float64, 0, numSpikes)
	waveforms := make([][][]float64, numSpikes)
	for s := range waveforms {
		waveforms[s] = make([][]float64, numChans)
	}

	for rec := 0; rec < recordCount; rec++ {
		off := rec * recordSize
		spike, channel := rec/numChans, rec%numChans

		// Keep the first of the per-channel timestamp copies.
		if channel == 0 {
			ts := decodeUintBE(payload[off : off+bytesPerTimestamp])
			times = append(times, float64(ts)/timebase)
		}
		off += bytesPerTimestamp

		// Stored polarity is inverted relative to the physical convention.
		samples := make([]float64, samplesPerSpike)
		for i := range samples {
			samples[i] = -float64(decodeIntLE(payload[off : off+bytesPerSample]))
			off += bytesPerSample
		}
		waveforms[spike][channel] = samples
	}

	if len(times) != numSpikes {
		return SpikeTrain{}, &FormatError{
			File: group.Filename,
			Msg:  fmt.Sprintf("recovered %d timestamps, header declares %d spikes", len(times), numSpikes),
		}
	}

	for c := 0; c < numChans; c++ {
		gain, err := d.channelGain(groupIndex, c)
		if err != nil {
			return SpikeTrain{}, fmt.Errorf("%s: %w", d.path, err)
		}
		for s := range waveforms {
			waveforms[s][c] = scaleSamples(waveforms[s][c], gain, d.adcFullScale, bytesPerSample)
		}
	}

	return SpikeTrain{
		Group:        group,
		Times:        times,
		Waveforms:    waveforms,
		SamplingRate: samplingRate,
		Timebase:     timebase,
		LeftSweep:    leftSweep,
		TStop:        d.duration,
		Params:       params,
	}, nil
}

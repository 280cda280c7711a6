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
	"sort"
	"strconv"
	"strings"
)

// ReadAnalogSignals decodes every EEG/EGF file of the dataset, one
// AnalogSignal per file, in sorted filename order.
func (d *Dataset) ReadAnalogSignals() ([]AnalogSignal, error) {
	base := filepath.Join(d.dir, d.base)

	var files []string
	for _, pattern := range []string{".eeg", ".eeg[0-9]*", ".egf", ".egf[0-9]*"} {
		matches, err := filepath.Glob(base + pattern)
		if err != nil {
			return nil, fmt.Errorf("error discovering analog files: %w", err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	signals := make([]AnalogSignal, 0, len(files))
	for _, name := range files {
		sig, err := d.readAnalogFile(name)
		if err != nil {
			return nil, err
		}
		signals = append(signals, sig)
	}
	return signals, nil
}

func (d *Dataset) readAnalogFile(path string) (AnalogSignal, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if len(ext) < 3 {
		return AnalogSignal{}, &FormatError{File: path, Msg: `unknown analog file kind, want "eeg" or "egf"`}
	}
	kind, rest := ext[:3], ext[3:]

	var countKey string
	switch kind {
	case "eeg":
		countKey = "num_EEG_samples"
	case "egf":
		countKey = "num_EGF_samples"
	default:
		return AnalogSignal{}, &FormatError{File: path, Msg: `unknown analog file kind, want "eeg" or "egf"`}
	}

	suffix := 1
	if rest != "" {
		var err error
		if suffix, err = strconv.Atoi(rest); err != nil {
			return AnalogSignal{}, &FormatError{File: path, Msg: "non-numeric analog file suffix"}
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return AnalogSignal{}, fmt.Errorf("error opening analog file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	params, err := newHeaderScanner(r).scan()
	if err != nil {
		return AnalogSignal{}, fmt.Errorf("%s: %w", path, err)
	}

	sampleCount, err := params.intParam(countKey)
	if err != nil {
		return AnalogSignal{}, fmt.Errorf("%s: %w", path, err)
	}
	sampleRate, err := params.hertzUnit("sample_rate")
	if err != nil {
		return AnalogSignal{}, fmt.Errorf("%s: %w", path, err)
	}
	bytesPerSample, err := params.intParam("bytes_per_sample")
	if err != nil {
		return AnalogSignal{}, fmt.Errorf("%s: %w", path, err)
	}
	numChans, err := params.intParam("num_chans")
	if err != nil {
		return AnalogSignal{}, fmt.Errorf("%s: %w", path, err)
	}

	payload, err := readPayload(r, sampleCount*numChans*bytesPerSample)
	if err != nil {
		return AnalogSignal{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := verifyTrailer(r); err != nil {
		return AnalogSignal{}, fmt.Errorf("%s: %w", path, err)
	}

	// The channel the trace represents is resolved through the root file:
	// suffix -> logical EEG channel -> reference bank -> physical channel.
	// Gain is keyed by the logical channel, not the physical one.
	logicalID, err := d.params.intParam(fmt.Sprintf("EEG_ch_%d", suffix))
	if err != nil {
		return AnalogSignal{}, fmt.Errorf("%s: %w", d.path, err)
	}
	mode, err := d.params.intParam(fmt.Sprintf("mode_ch_%d", logicalID))
	if err != nil {
		return AnalogSignal{}, fmt.Errorf("%s: %w", d.path, err)
	}
	bank, err := d.params.intParam(fmt.Sprintf("b_in_ch_%d", logicalID))
	if err != nil {
		return AnalogSignal{}, fmt.Errorf("%s: %w", d.path, err)
	}
	physicalID, err := d.params.intParam(fmt.Sprintf("ref_%d", bank))
	if err != nil {
		return AnalogSignal{}, fmt.Errorf("%s: %w", d.path, err)
	}
	gain, err := d.params.floatParam(fmt.Sprintf("gain_ch_%d", logicalID))
	if err != nil {
		return AnalogSignal{}, fmt.Errorf("%s: %w", d.path, err)
	}

	raw := make([]float64, sampleCount*numChans)
	for i := range raw {
		raw[i] = float64(decodeIntLE(payload[i*bytesPerSample : (i+1)*bytesPerSample]))
	}

	return AnalogSignal{
		ChannelID:  physicalID,
		Samples:    scaleSamples(raw, gain, d.adcFullScale, bytesPerSample),
		Channels:   numChans,
		SampleRate: sampleRate,
		Mode:       mode,
		Filename:   path,
		Suffix:     suffix,
		Params:     params,
	}, nil
}

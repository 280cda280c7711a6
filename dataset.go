// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package axona reads Axona electrophysiology datasets: spike trains,
// tracking positions, and EEG/EGF traces, scaled to physical units.
package axona

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Dataset is the decoded catalog of one Axona recording session: the root
// .set parameters plus the channel-group index built from the companion spike
// files. It is immutable once Open returns, so the per-file decoders may run
// concurrently if the caller chooses to.
type Dataset struct {
	path string // Path of the root .set file
	dir  string
	base string // Base filename without extension

	params       ParameterBlock
	adcFullScale float64 // ADC full-scale reference in uV
	duration     float64 // Nominal recording duration in seconds
	trackedSpots int

	groups         []ChannelGroup
	channelToGroup map[int]int // Global channel id -> index into groups
	channelCount   int
}

// Open reads the root .set file and builds the dataset catalog. Companion
// spike files are discovered by the <base>.<N> naming convention and sorted
// lexicographically, so group ids are deterministic regardless of directory
// listing order. Only the embedded headers are read here, no binary payloads.
func Open(path string) (*Dataset, error) {
	if filepath.Ext(path) != ".set" {
		return nil, &ConfigError{Path: path, Msg: `file extension must be ".set"`}
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading set file: %w", err)
	}

	dir, name := filepath.Split(path)
	d := &Dataset{
		path:           path,
		dir:            dir,
		base:           strings.TrimSuffix(name, ".set"),
		params:         ParseParams(string(text)),
		channelToGroup: make(map[int]int),
	}

	fullScaleMV, err := d.params.floatParam("ADC_fullscale_mv")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.adcFullScale = fullScaleMV * 1000 // mV -> uV

	if d.duration, err = d.params.floatParam("duration"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.trackedSpots, err = d.params.intParam("tracked_spots"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := d.discoverGroups(); err != nil {
		return nil, err
	}

	return d, nil
}

// discoverGroups finds the channel-group spike files, assigns 1-based group
// ids in sorted filename order, and mints each group a contiguous block of
// global channel ids.
func (d *Dataset) discoverGroups() error {
	matches, err := filepath.Glob(filepath.Join(d.dir, d.base) + ".[0-9]*")
	if err != nil {
		return fmt.Errorf("error discovering channel group files: %w", err)
	}
	sort.Strings(matches)

	for _, name := range matches {
		params, err := scanFileHeader(name)
		if err != nil {
			return err
		}
		numChans, err := params.intParam("num_chans")
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		channels := make([]int, numChans)
		for i := range channels {
			channels[i] = d.channelCount + i
		}

		group := ChannelGroup{
			ID:       len(d.groups) + 1,
			Channels: channels,
			Filename: name,
		}
		d.groups = append(d.groups, group)
		for _, ch := range channels {
			d.channelToGroup[ch] = len(d.groups) - 1
		}
		d.channelCount += numChans
	}

	return nil
}

// scanFileHeader opens a binary file, scans its embedded text header, and
// closes it again without touching the payload.
func scanFileHeader(path string) (ParameterBlock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	params, err := newHeaderScanner(bufio.NewReader(f)).scan()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return params, nil
}

// Groups returns the discovered channel groups in id order. The returned
// slice is shared and must not be modified.
func (d *Dataset) Groups() []ChannelGroup { return d.groups }

// GroupForChannel returns the channel group owning the given global channel id.
func (d *Dataset) GroupForChannel(channel int) (ChannelGroup, bool) {
	i, ok := d.channelToGroup[channel]
	if !ok {
		return ChannelGroup{}, false
	}
	return d.groups[i], true
}

// ChannelCount returns the total number of channels across all groups.
func (d *Dataset) ChannelCount() int { return d.channelCount }

// Duration returns the nominal recording duration in seconds.
func (d *Dataset) Duration() float64 { return d.duration }

// TrackedSpots returns the number of position markers tracked by the session.
func (d *Dataset) TrackedSpots() int { return d.trackedSpots }

// ADCFullScale returns the converter's full-scale reference in microvolts.
func (d *Dataset) ADCFullScale() float64 { return d.adcFullScale }

// Params returns the root .set parameters. The block is shared and must not
// be modified.
func (d *Dataset) Params() ParameterBlock { return d.params }

// channelGain looks up the calibration gain for one channel of a group. The
// root file indexes gains by amplifier bank position, and the format fixes
// banks at 4 channels (one tetrode) regardless of the group's actual channel
// count.
func (d *Dataset) channelGain(groupIndex, channel int) (float64, error) {
	return d.params.floatParam(fmt.Sprintf("gain_ch_%d", groupIndex*4+channel))
}

// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package axona

// ChannelGroup describes one hardware recording bank (e.g. a tetrode): a set
// of logical channels that share a single spike file. Groups are created once
// during catalog construction and are immutable afterwards.
type ChannelGroup struct {
	ID       int    // 1-based group id, assigned in sorted discovery order
	Channels []int  // Global channel ids owned by this group, contiguous
	Filename string // Path of the group's spike file
}

// SpikeTrain is the decoded contents of one channel-group spike file.
type SpikeTrain struct {
	Group        ChannelGroup
	Times        []float64     // Spike timestamps in seconds
	Waveforms    [][][]float64 // Calibrated waveforms in uV, indexed [spike][channel][sample]
	SamplingRate float64       // Waveform sampling rate in Hz
	Timebase     float64       // Timestamp clock frequency in Hz
	LeftSweep    float64       // Pre-trigger window in seconds
	TStop        float64       // Recording duration in seconds
	Params       ParameterBlock
}

// TrackingStream is one tracked spot's irregularly sampled 2D position.
// Coordinates are in metres; NaN marks a sample where the hardware lost the
// spot.
type TrackingStream struct {
	Name       string
	Times      []float64 // Timestamps in seconds
	X          []float64
	Y          []float64
	SampleRate float64 // Nominal position sampling rate in Hz
	Params     ParameterBlock
}

// AnalogSignal is one continuously sampled EEG or EGF trace.
type AnalogSignal struct {
	ChannelID  int       // Resolved original physical channel id
	Samples    []float64 // Calibrated samples in uV, channel-interleaved
	Channels   int       // Samples per frame (usually 1)
	SampleRate float64   // Sampling rate in Hz
	Mode       int       // Recording mode of the logical EEG channel
	Filename   string    // Source file
	Suffix     int       // Numeric extension suffix (1 for plain .eeg/.egf)
	Params     ParameterBlock
}

// Recording aggregates everything decoded from one dataset.
type Recording struct {
	SpikeTrains   []SpikeTrain
	Tracking      []TrackingStream
	AnalogSignals []AnalogSignal
	Duration      float64 // Nominal recording duration in seconds
}

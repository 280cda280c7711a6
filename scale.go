// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package axona

// maxRepresentable returns the magnitude of the most negative value a signed
// sample of the given byte width can hold (128 when bytesPerSample is 1).
func maxRepresentable(bytesPerSample int) float64 {
	return float64(int64(1) << (8*bytesPerSample - 1))
}

// scaleSample converts one raw ADC sample to microvolts. The mapping when
// bytesPerSample is 1 is
//
//	[-128, 127] -> [-1.0, 127.0/128.0] * fullScale / gain
//
// The correctness of this mapping has been verified with Axona.
func scaleSample(value, gain, fullScale float64, bytesPerSample int) float64 {
	return value / maxRepresentable(bytesPerSample) * (fullScale / gain)
}

// scaleSamples converts a slice of raw samples to microvolts. The result is
// always a freshly allocated slice, so the caller's raw buffer is never
// rewritten in place.
func scaleSamples(values []float64, gain, fullScale float64, bytesPerSample int) []float64 {
	factor := (fullScale / gain) / maxRepresentable(bytesPerSample)
	scaled := make([]float64, len(values))
	for i, v := range values {
		scaled[i] = v * factor
	}
	return scaled
}

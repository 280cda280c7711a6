// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package axona

import "log/slog"

// ReadAll decodes the complete dataset. A tracking failure is demoted to a
// logged warning, so spike and analog data still come back from a session
// recorded without (or with a corrupt) position file.
func (d *Dataset) ReadAll() (*Recording, error) {
	rec := &Recording{Duration: d.duration}

	var err error
	if rec.AnalogSignals, err = d.ReadAnalogSignals(); err != nil {
		return nil, err
	}

	if rec.Tracking, err = d.ReadTracking(); err != nil {
		slog.Warn("unable to read tracking data", "dataset", d.path, "error", err)
		rec.Tracking = nil
	}

	if rec.SpikeTrains, err = d.ReadSpikeTrains(); err != nil {
		return nil, err
	}

	return rec, nil
}

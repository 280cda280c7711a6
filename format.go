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
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	headerSentinel  = "data_start"
	trailerSentinel = "data_end"
)

// headerScanner reads the variable-length text header embedded at the start
// of an Axona binary file. The header has no length field, so the scanner
// consumes one byte at a time until the data_start sentinel appears, leaving
// the read cursor at the first byte of the binary payload.
type headerScanner struct {
	r      *bufio.Reader
	header []byte
}

func newHeaderScanner(r *bufio.Reader) *headerScanner {
	return &headerScanner{r: r}
}

// scan consumes the header and returns its parsed parameters. The sentinel
// itself is not part of the returned block.
func (s *headerScanner) scan() (ParameterBlock, error) {
	for !bytes.HasSuffix(s.header, []byte(headerSentinel)) {
		b, err := s.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, &FormatError{Msg: fmt.Sprintf("unexpected end of file before %q found", headerSentinel)}
			}
			return nil, fmt.Errorf("error scanning header: %w", err)
		}
		s.header = append(s.header, b)
	}

	return ParseParams(string(s.header[:len(s.header)-len(headerSentinel)])), nil
}

// readPayload reads exactly n bytes of binary payload. A short read means
// the file was truncated.
func readPayload(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, &FormatError{Msg: fmt.Sprintf("short record: wanted %d payload bytes: %v", n, err)}
	}
	return buf, nil
}

// verifyTrailer checks that everything remaining after the payload is the
// data_end marker. This must run after every payload read: the format has no
// checksum, so a trailer mismatch is the only corruption signal.
func verifyTrailer(r io.Reader) error {
	rest, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading trailer: %w", err)
	}
	if strings.TrimSpace(string(rest)) != trailerSentinel {
		return &FormatError{Msg: fmt.Sprintf("corrupt or short record: expected %q trailer", trailerSentinel)}
	}
	return nil
}

// decodeUintBE decodes a big-endian unsigned integer of 1 to 8 bytes.
func decodeUintBE(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}

// decodeIntBE decodes a big-endian two's-complement integer of 1 to 8 bytes.
func decodeIntBE(b []byte) int64 {
	shift := 64 - 8*len(b)
	return int64(decodeUintBE(b)<<shift) >> shift
}

// decodeIntLE decodes a little-endian two's-complement integer of 1 to 8 bytes.
func decodeIntLE(b []byte) int64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	shift := 64 - 8*len(b)
	return int64(v<<shift) >> shift
}

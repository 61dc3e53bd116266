/*
 * compress.go, part of flint.
 *
 *
 * Copyright 2024 The Flint authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package flint

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// readCloser closes both the decompressor and the underlying file.
type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var err error
	for _, c := range r.closers {
		if e := c(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// OpenInput opens the file fname and returns an object that will
// read data from the file, either 'as is' or decompressing first, depending on the
// file extension (.gz for gzip, .zst for zstd).
func OpenInput(fname string) (io.ReadCloser, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	reader := bufio.NewReader(f)
	lname := strings.ToLower(fname)
	switch {
	case strings.HasSuffix(lname, ".gz"):
		gz, err := gzip.NewReader(reader)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloser{gz, []func() error{gz.Close, f.Close}}, nil
	case strings.HasSuffix(lname, ".zst"):
		zr, err := zstd.NewReader(reader)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloser{zr, []func() error{func() error { zr.Close(); return nil }, f.Close}}, nil
	default:
		return &readCloser{reader, []func() error{f.Close}}, nil
	}
}

// TrimCompression removes a compression extension from fname, if present.
func TrimCompression(fname string) string {
	l := strings.ToLower(fname)
	for _, ext := range []string{".gz", ".zst"} {
		if strings.HasSuffix(l, ext) {
			return fname[:len(fname)-len(ext)]
		}
	}
	return fname
}

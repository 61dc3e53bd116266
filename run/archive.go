/*
 * archive.go, part of flint.
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

package run

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Archive writes the whole run directory as a zstd-compressed tar file to name.
// Paths inside the archive start with the run directory name.
func (R *Run) Archive(name string) error {
	errid := "Run/Archive"
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", errid, err)
	}
	tw := tar.NewWriter(zw)
	err = writeTar(tw, R.Dir, name)
	for _, c := range []io.Closer{tw, zw, f} {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

// ArchivePath returns the default archive name for the run, next to its directory.
func (R *Run) ArchivePath() string {
	return filepath.Clean(R.Dir) + ArchiveExt
}

func writeTar(tw *tar.Writer, dir, skip string) error {
	base := filepath.Dir(filepath.Clean(dir))
	skipabs, _ := filepath.Abs(skip)
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if abs, _ := filepath.Abs(path); abs == skipabs {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() && !info.IsDir() {
			return nil
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		_, err = io.Copy(tw, in)
		return err
	})
}

// ArchiveFiles lists the names of the files in a run archive.
func ArchiveFiles(name string) ([]string, error) {
	errid := "ArchiveFiles"
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	defer zr.Close()
	tr := tar.NewReader(zr)
	var ret []string
	for {
		h, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errid, err)
		}
		if h.Typeflag == tar.TypeReg {
			ret = append(ret, h.Name)
		}
	}
	return ret, nil
}

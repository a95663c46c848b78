// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package dir deals with packaging a directory tree as an OCI layer.
package dir

import (
	"archive/tar"
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	ociv1 "github.com/google/go-containerregistry/pkg/v1"
	ociv1tarball "github.com/google/go-containerregistry/pkg/v1/tarball"
)

// Prefix describes a directory to nest the tree under inside the layer, and
// the ownership to record on every entry.  DirName should be forward-slash
// separated and absolute but NOT starting with a slash; for example
// "var/www/simple".
type Prefix struct {
	DirName string

	// Mode is the permission bits for the prefix directories themselves;
	// zero means 0o755.
	Mode int

	UID   int
	UName string
	GID   int
	GName string
}

// LayerFromDir packages the tree rooted at dirname as an uncompressed OCI
// layer.  Timestamps later than clampTime are clamped to clampTime, so that
// the same tree packaged with the same clampTime yields the same layer bytes.
func LayerFromDir(
	dirname string,
	prefix *Prefix,
	clampTime time.Time,
	opts ...ociv1tarball.LayerOption,
) (ociv1.Layer, error) {
	var byteWriter bytes.Buffer
	tarWriter := tar.NewWriter(&byteWriter)

	if prefix != nil {
		if prefix.Mode == 0 {
			prefix.Mode = 0o755
		}
		var dirs []string
		for dir := prefix.DirName; dir != "."; dir = path.Dir(dir) {
			dirs = append(dirs, dir)
		}
		for i := len(dirs) - 1; i >= 0; i-- {
			if err := tarWriter.WriteHeader(&tar.Header{
				Name:     dirs[i],
				Typeflag: tar.TypeDir,
				ModTime:  clampTime,

				Mode:  int64(prefix.Mode),
				Uid:   prefix.UID,
				Uname: prefix.UName,
				Gid:   prefix.GID,
				Gname: prefix.GName,
			}); err != nil {
				return nil, err
			}
		}
	}

	// filepath.Walk visits in lexical order, which keeps the layer bytes
	// deterministic.
	err := filepath.Walk(dirname, func(filename string, info fs.FileInfo, e error) error {
		if e != nil {
			return e
		}
		name, err := filepath.Rel(dirname, filename)
		if err != nil {
			return err
		}
		name = filepath.ToSlash(name)
		if name == "." {
			return nil
		}
		if prefix != nil {
			name = path.Join(prefix.DirName, name)
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = name
		if header.Typeflag == tar.TypeSymlink {
			header.Linkname, err = os.Readlink(filename)
			if err != nil {
				return err
			}
		}
		if header.ModTime.After(clampTime) {
			header.ModTime = clampTime
		}
		if header.AccessTime.After(clampTime) {
			header.AccessTime = clampTime
		}
		if header.ChangeTime.After(clampTime) {
			header.ChangeTime = clampTime
		}
		if prefix != nil {
			header.Uid = prefix.UID
			header.Uname = prefix.UName
			header.Gid = prefix.GID
			header.Gname = prefix.GName
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return err
		}
		if header.Typeflag == tar.TypeReg {
			reader, err := os.Open(filename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(tarWriter, reader); err != nil {
				_ = reader.Close()
				return err
			}
			if err := reader.Close(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := tarWriter.Close(); err != nil {
		return nil, err
	}

	byteSlice := byteWriter.Bytes()
	return ociv1tarball.LayerFromOpener(func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(byteSlice)), nil
	}, opts...)
}

// WriteLayer copies the layer's uncompressed tar stream to dst.
func WriteLayer(layer ociv1.Layer, dst io.Writer) (err error) {
	layerReader, err := layer.Uncompressed()
	if err != nil {
		return err
	}
	defer func() {
		if _err := layerReader.Close(); _err != nil && err == nil {
			err = _err
		}
	}()
	if _, err := io.Copy(dst, layerReader); err != nil {
		return err
	}
	return nil
}

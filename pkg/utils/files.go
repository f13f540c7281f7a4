package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// ErrEmptyArchive is returned by LoadFile when an archive
// contains no files.
var ErrEmptyArchive = errors.New("archive contains no files")

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip, .7z) yield their first file, compressed streams
// (.gz, .xz, .lz4, .zst, .br) are decompressed, and anything else is
// returned as is.
func LoadFile(filename string) ([]byte, error) {
	// read the file into a byte slice
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	// does the file have an extension?
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return data, nil
	}

	data, err = Decompress(ext, data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filename, err)
	}
	return data, nil
}

// Decompress decompresses data according to the file extension ext
// (including the leading dot). Unknown extensions return data as is.
func Decompress(ext string, data []byte) ([]byte, error) {
	r := bytes.NewReader(data)

	// try to assert the compression type from the file extension
	var decoder io.Reader
	var err error
	switch ext {
	case ".gz":
		decoder, err = gzip.NewReader(r)
	case ".xz":
		decoder, err = xz.NewReader(r)
	case ".lz4":
		decoder = lz4.NewReader(r)
	case ".br":
		decoder = brotli.NewReader(r)
	case ".zst":
		var d *zstd.Decoder
		d, err = zstd.NewReader(r)
		if err == nil {
			defer d.Close()
			decoder = d
		}
	case ".zip":
		zipReader, zErr := zip.NewReader(r, int64(len(data)))
		if zErr != nil {
			return nil, zErr
		}
		if len(zipReader.File) == 0 {
			return nil, ErrEmptyArchive
		}

		// read the first file in the zip file
		rc, oErr := zipReader.File[0].Open()
		if oErr != nil {
			return nil, oErr
		}
		defer rc.Close()
		decoder = rc
	case ".7z":
		szReader, sErr := sevenzip.NewReader(r, int64(len(data)))
		if sErr != nil {
			return nil, sErr
		}
		if len(szReader.File) == 0 {
			return nil, ErrEmptyArchive
		}

		// read the first file in the archive
		rc, oErr := szReader.File[0].Open()
		if oErr != nil {
			return nil, oErr
		}
		defer rc.Close()
		decoder = rc
	default:
		// return the data as is
		return data, nil
	}

	if err != nil {
		return nil, err
	}

	// read the decompressed data into a byte slice
	return io.ReadAll(decoder)
}

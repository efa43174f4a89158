package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// writeOutput writes text to path, zstd-compressed when path ends in .zst.
func writeOutput(path, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".zst") {
		err = writeZstd(f, text)
	} else {
		_, err = io.WriteString(f, text)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func writeZstd(w io.Writer, text string) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if _, err := io.WriteString(enc, text); err != nil {
		enc.Close()
		return fmt.Errorf("zstd write: %w", err)
	}
	return enc.Close()
}

// readOutput reads a file written by writeOutput.
func readOutput(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}
	b, err := io.ReadAll(r)
	return string(b), err
}

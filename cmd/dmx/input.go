package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	dmx "github.com/dmx-format/go-dmx"
	"github.com/dmx-format/go-dmx/decode"
)

// readDoc decodes one input argument.  "-" reads stdin, names ending
// in .gz are decompressed transparently.
func readDoc(file string) (*dmx.Document, error) {
	if file == "-" {
		return decode.FromReader(os.Stdin)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", file, err)
	}
	defer f.Close()
	if strings.HasSuffix(file, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("error processing %s: %w", file, err)
		}
		defer zr.Close()
		doc, err := decode.FromReader(zr)
		if err != nil {
			return nil, fmt.Errorf("error processing %s: %w", file, err)
		}
		return doc, nil
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", file, err)
	}
	doc, err := decode.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("error processing %s: %w", file, err)
	}
	return doc, nil
}

// inputs defaults to stdin when no file arguments are given.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

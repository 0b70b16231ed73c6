// Package dump renders decoded documents for inspection.
//
// # Usage
//
//	// Plain text listing of the element pool
//	err := dump.Text(os.Stdout, doc)
//
//	// Colorized, arrays elided after 8 items
//	err := dump.Text(os.Stdout, doc, dump.WithColors(dump.NewColors()), dump.WithLimit(8))
//
//	// Generic JSON projection
//	data, err := dump.JSON(doc)
//
// The output is diagnostic only; neither form round-trips back to the
// binary encoding.
//
// # Related Packages
//
//   - github.com/dmx-format/go-dmx - document and value model
//   - github.com/dmx-format/go-dmx/decode - binary decoding
package dump

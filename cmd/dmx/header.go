package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func header(cfg *HeaderConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Header.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, file := range inputs(args) {
		doc, err := readDoc(file)
		if err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "%s: dmx %s %d format %s %d, %d elements\n",
			file, doc.Encoding, doc.EncodingVersion,
			doc.Format, doc.FormatVersion, doc.Len())
	}
	return nil
}

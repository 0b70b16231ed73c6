package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/dmx-format/go-dmx/dump"
)

func dumpFiles(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	files := inputs(args)
	for i, file := range files {
		doc, err := readDoc(file)
		if err != nil {
			return err
		}
		if len(files) > 1 {
			if i > 0 {
				fmt.Fprintln(cc.Out)
			}
			fmt.Fprintf(cc.Out, "# %s\n", file)
		}
		if cfg.JSON {
			d, err := dump.JSON(doc)
			if err != nil {
				return fmt.Errorf("error encoding %s: %w", file, err)
			}
			if _, err := cc.Out.Write(append(d, '\n')); err != nil {
				return err
			}
			continue
		}
		if err := dump.Text(cc.Out, doc, cfg.dumpOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
	}
	return nil
}

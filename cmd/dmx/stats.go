package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/scott-cotton/cli"

	dmx "github.com/dmx-format/go-dmx"
)

func stats(cfg *StatsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Stats.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, file := range inputs(args) {
		doc, err := readDoc(file)
		if err != nil {
			return err
		}
		byType := map[string]int{}
		byKind := map[dmx.Type]int{}
		attrs := 0
		for i := range doc.Elements {
			el := &doc.Elements[i]
			byType[el.Type]++
			attrs += len(el.Attrs)
			for _, a := range el.Attrs {
				byKind[a.Value.Kind()]++
			}
		}
		fmt.Fprintf(cc.Out, "%s: format %s %d, %d elements, %d attributes\n",
			file, doc.Format, doc.FormatVersion, doc.Len(), attrs)
		fmt.Fprintf(cc.Out, "  elements\n")
		for _, t := range slices.Sorted(maps.Keys(byType)) {
			fmt.Fprintf(cc.Out, "    %-40s %d\n", t, byType[t])
		}
		fmt.Fprintf(cc.Out, "  attributes\n")
		for _, k := range slices.Sorted(maps.Keys(byKind)) {
			fmt.Fprintf(cc.Out, "    %-40s %d\n", k, byKind[k])
		}
	}
	return nil
}

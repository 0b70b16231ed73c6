package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	dmx "github.com/dmx-format/go-dmx"
	"github.com/dmx-format/go-dmx/debug"
	"github.com/dmx-format/go-dmx/dump"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	da, err := readDoc(args[0])
	if err != nil {
		return err
	}
	db, err := readDoc(args[1])
	if err != nil {
		return err
	}
	if cfg.JSON {
		return diffJSON(cfg, cc, args, da, db)
	}
	var a, b bytes.Buffer
	if err := dump.Text(&a, da); err != nil {
		return fmt.Errorf("error encoding %s: %w", args[0], err)
	}
	if err := dump.Text(&b, db); err != nil {
		return fmt.Errorf("error encoding %s: %w", args[1], err)
	}
	if a.String() == b.String() {
		return nil
	}
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a.String(), b.String())
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	if debug.Diff() {
		debug.Logf("diff %s %s: %d segments\n", args[0], args[1], len(diffs))
	}
	writeLineDiff(cc.Out, diffs)
	return cli.ExitCodeErr(1)
}

func diffJSON(cfg *DiffConfig, cc *cli.Context, args []string, da, db *dmx.Document) error {
	ja, err := dump.JSON(da)
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", args[0], err)
	}
	jb, err := dump.JSON(db)
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", args[1], err)
	}
	patch, err := jsonpatch.CreateMergePatch(ja, jb)
	if err != nil {
		return fmt.Errorf("error computing merge patch: %w", err)
	}
	if string(patch) == "{}" {
		return nil
	}
	if _, err := cc.Out.Write(append(patch, '\n')); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

// writeLineDiff prints a line oriented diff, eliding the middle of
// long unchanged runs.
func writeLineDiff(w io.Writer, diffs []diffpatch.Diff) {
	for _, d := range diffs {
		lines := strings.SplitAfter(d.Text, "\n")
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines = lines[:n-1]
		}
		switch d.Type {
		case diffpatch.DiffEqual:
			if len(lines) > 4 {
				for _, l := range lines[:2] {
					fmt.Fprintf(w, "  %s", l)
				}
				fmt.Fprintf(w, "  ...\n")
				for _, l := range lines[len(lines)-2:] {
					fmt.Fprintf(w, "  %s", l)
				}
				continue
			}
			for _, l := range lines {
				fmt.Fprintf(w, "  %s", l)
			}
		case diffpatch.DiffDelete:
			for _, l := range lines {
				fmt.Fprintf(w, "- %s", l)
			}
		case diffpatch.DiffInsert:
			for _, l := range lines {
				fmt.Fprintf(w, "+ %s", l)
			}
		}
	}
}

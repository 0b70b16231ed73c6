package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/dmx-format/go-dmx/dump"
)

// MainConfig is the root command configuration, embedded in every
// subcommand config.
type MainConfig struct {
	Color   bool `cli:"name=color desc='force colorized output'"`
	Verbose bool `cli:"name=v aliases=verbose desc='enable debug logging'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// colorOpts decides whether dump output is colorized.  An explicit
// -color or -color=false wins, otherwise color turns on when writing
// to a terminal.
func (cfg *MainConfig) colorOpts(w io.Writer) []dump.Option {
	if cfg.Color {
		return []dump.Option{dump.WithColors(dump.NewColors())}
	}
	colorSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorSet = opt.Value != nil
		break
	}
	if colorSet {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return []dump.Option{dump.WithColors(dump.NewColors())}
	}
	return nil
}

type HeaderConfig struct {
	*MainConfig
	Header *cli.Command
}

type DumpConfig struct {
	*MainConfig
	JSON  bool `cli:"name=json desc='print the JSON projection'"`
	Limit int  `cli:"name=limit desc='elide array and binary values past n items'"`

	Dump *cli.Command
}

func (cfg *DumpConfig) dumpOpts(w io.Writer) []dump.Option {
	var res []dump.Option
	if cfg.Limit > 0 {
		res = append(res, dump.WithLimit(cfg.Limit))
	}
	return append(res, cfg.colorOpts(w)...)
}

type QueryConfig struct {
	*MainConfig
	Expr string `cli:"name=e aliases=expr desc='boolean expression over elements'"`

	Query *cli.Command
}

type DiffConfig struct {
	*MainConfig
	JSON bool `cli:"name=json desc='print a JSON merge patch instead of a line diff'"`

	Diff *cli.Command
}

type StatsConfig struct {
	*MainConfig
	Stats *cli.Command
}

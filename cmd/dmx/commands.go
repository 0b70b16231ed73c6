package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "dmx").
		WithSynopsis("dmx [opts] command [opts]").
		WithDescription("dmx is a tool for inspecting binary DMX files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dmxMain(cfg, cc, args)
		}).
		WithSubs(
			HeaderCommand(cfg),
			DumpCommand(cfg),
			QueryCommand(cfg),
			DiffCommand(cfg),
			StatsCommand(cfg))
}

func HeaderCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &HeaderConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Header, "header").
		WithAliases("h", "head").
		WithSynopsis("header <file> [files]").
		WithDescription("print the decoded header of each file").
		WithRun(func(cc *cli.Context, args []string) error {
			return header(cfg, cc, args)
		})
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithSynopsis("dump [-json] [-limit n] [files]").
		WithDescription("print the decoded element pool").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dumpFiles(cfg, cc, args)
		})
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Query, "query").
		WithAliases("q").
		WithSynopsis("query -e <expr> [files]").
		WithDescription(queryDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return query(cfg, cc, args)
		})
}

const queryDescription = `query prints the elements for which a boolean expression holds.

The expression runs once per element with the following environment:

  Type        element type string
  Name        element name string
  ID          object id in uuid form
  Index       position in the element pool
  Attr(name)  attribute value, or nil when absent
  Has(name)   whether the attribute is present

Examples:

  dmx query -e 'Type == "CMapEntity"' map.vmap
  dmx query -e 'Has("origin") && Attr("visible") == false' map.vmap`

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("di").
		WithSynopsis("diff [-json] a b").
		WithDescription("diff the decoded forms of two files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func StatsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &StatsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Stats, "stats").
		WithAliases("s", "st").
		WithSynopsis("stats [files]").
		WithDescription("print element and attribute counts").
		WithRun(func(cc *cli.Context, args []string) error {
			return stats(cfg, cc, args)
		})
}

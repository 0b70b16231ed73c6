package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/scott-cotton/cli"

	dmx "github.com/dmx-format/go-dmx"
	"github.com/dmx-format/go-dmx/debug"
	"github.com/dmx-format/go-dmx/dump"
)

// elemEnv is one element as a query expression sees it.
type elemEnv struct {
	Type  string
	Name  string
	ID    string
	Index int

	el *dmx.Element
}

// Attr returns the named attribute's value, or nil when absent.
func (e elemEnv) Attr(name string) any {
	v, ok := e.el.Get(name)
	if !ok {
		return nil
	}
	return queryValue(v)
}

func (e elemEnv) Has(name string) bool {
	_, ok := e.el.Get(name)
	return ok
}

// queryValue maps attribute values onto the types the expression
// language compares naturally.  Vectors, matrices and arrays pass
// through and expose their fields and items directly.
func queryValue(v dmx.Value) any {
	switch v := v.(type) {
	case dmx.Int:
		return int(v)
	case dmx.Float:
		return float64(v)
	case dmx.Bool:
		return bool(v)
	case dmx.String:
		return string(v)
	case dmx.Binary:
		return []byte(v)
	case dmx.Time:
		return v.Seconds()
	case dmx.UInt64:
		return uint64(v)
	case dmx.UInt8:
		return int(v)
	case dmx.ObjectId:
		return v.String()
	case dmx.ElementRef:
		i, ok := v.Index()
		if !ok {
			return nil
		}
		return i
	case dmx.StringArray:
		return []string(v)
	case dmx.IntArray:
		return []int32(v)
	case dmx.FloatArray:
		return []float32(v)
	case dmx.BoolArray:
		return []bool(v)
	default:
		return v
	}
}

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Expr == "" {
		return fmt.Errorf("%w: query requires -e <expr>", cli.ErrUsage)
	}
	prg, err := expr.Compile(cfg.Expr, expr.Env(elemEnv{}), expr.AsBool())
	if err != nil {
		return fmt.Errorf("%w: invalid expression %q: %v", cli.ErrUsage, cfg.Expr, err)
	}
	files := inputs(args)
	anyMatch := false
	for _, file := range files {
		doc, err := readDoc(file)
		if err != nil {
			return err
		}
		var matched []int
		for i := range doc.Elements {
			el := &doc.Elements[i]
			res, err := expr.Run(prg, elemEnv{
				Type:  el.Type,
				Name:  el.Name,
				ID:    el.ID.String(),
				Index: i,
				el:    el,
			})
			if err != nil {
				return fmt.Errorf("error evaluating element %d of %s: %w", i, file, err)
			}
			if res.(bool) {
				matched = append(matched, i)
			}
		}
		theLog.Debug("query", "file", file, "elements", doc.Len(), "matched", len(matched))
		if debug.Query() {
			debug.Logf("query %q on %s: matched %v\n", cfg.Expr, file, matched)
		}
		if len(matched) == 0 {
			continue
		}
		anyMatch = true
		if len(files) > 1 {
			fmt.Fprintf(cc.Out, "# %s\n", file)
		}
		opts := append(cfg.colorOpts(cc.Out), dump.WithElements(matched...))
		if err := dump.Text(cc.Out, doc, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
	}
	if !anyMatch {
		return cli.ExitCodeErr(1)
	}
	return nil
}

package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	dmx "github.com/dmx-format/go-dmx"
	"github.com/dmx-format/go-dmx/dump"
)

// Doc wraps a document so %s renders the full listing.
type Doc struct{ *dmx.Document }

func (y Doc) String() string {
	buf := bytes.NewBuffer(nil)
	if err := dump.Text(buf, y.Document); err != nil {
		return fmt.Sprintf("[raw %T] %v", y.Document, err)
	}
	return buf.String()
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *dmx.Document:
			buf := bytes.NewBuffer(nil)
			if err := dump.Text(buf, x); err != nil {
				args[i] = fmt.Sprintf("[raw %T] %v", x, err)
				continue
			}
			args[i] = buf.String()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

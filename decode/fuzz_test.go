package decode

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	dmx "github.com/dmx-format/go-dmx"
	"github.com/dmx-format/go-dmx/internal/dmxtest"
)

func FuzzFromBytes(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte("<!-- dmx encoding binary 9 format vmap 35 -->\n\x00"))
	f.Add([]byte("<!-- dmx encoding keyvalues2 1 format dmx 1 -->\n"))
	f.Add(minimalDoc().Bytes())
	f.Add(richDoc().Bytes())
	f.Add((&dmxtest.Doc{}).Bytes())
	f.Add(dmxtest.NewWriter().Header("binary", 9, "vmap", 35).
		I32(0).I32(0).I32(1).CStr("x").I32(1).I32(0).I32(0).Raw(make([]byte, 16)).
		I32(1).I32(0).Tag(dmx.BinaryType).I32(1 << 28).
		Bytes())

	f.Fuzz(func(t *testing.T, data []byte) {
		doc, err := FromBytes(data)
		rdoc, rerr := FromReader(bytes.NewReader(data))
		if (err == nil) != (rerr == nil) {
			t.Fatalf("byte and reader sources disagree: %v vs %v", err, rerr)
		}
		if err != nil {
			if doc != nil {
				t.Fatal("document returned alongside error")
			}
			if !errors.Is(err, ErrMalformed) && !errors.Is(err, ErrUnsupportedVersion) {
				t.Fatalf("unclassified error: %v", err)
			}
			return
		}
		if diff := cmp.Diff(doc, rdoc, docCmpOpts()...); diff != "" {
			t.Fatalf("byte and reader documents differ (-bytes +reader):\n%s", diff)
		}
	})
}

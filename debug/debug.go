// Package debug gates diagnostic logging behind DMX_DEBUG_*
// environment variables, one boolean per subsystem.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Decode bool
	Schema bool
	Query  bool
	Diff   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Decode = boolEnv("DMX_DEBUG_DECODE")
	d.Schema = boolEnv("DMX_DEBUG_SCHEMA")
	d.Query = boolEnv("DMX_DEBUG_QUERY")
	d.Diff = boolEnv("DMX_DEBUG_DIFF")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Decode() bool {
	return d.Decode
}
func Schema() bool {
	return d.Schema
}
func Query() bool {
	return d.Query
}
func Diff() bool {
	return d.Diff
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}

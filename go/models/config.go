package models

import (
	"github.com/xyproto/env/v2"
)

type Config struct {
	Color     bool
	TraceSys  bool
	TraceFile string
	Verbose   bool
	Strsize   int
}

// NewConfig builds the default config, with SUBSTRATE_* environment
// overrides so traces can be flipped on without touching call sites.
func NewConfig() *Config {
	return &Config{
		Color:     env.Bool("SUBSTRATE_COLOR"),
		TraceSys:  env.Bool("SUBSTRATE_STRACE"),
		TraceFile: env.Str("SUBSTRATE_TRACE_FILE"),
		Verbose:   env.Bool("SUBSTRATE_VERBOSE"),
		Strsize:   env.Int("SUBSTRATE_STRSIZE", 32),
	}
}

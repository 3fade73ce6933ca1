// Package catdebug holds the set of global RELKAT_DEBUG flags, the way
// cuelang.org/go/internal/cuedebug holds CUE_DEBUG flags.
package catdebug

import (
	"sync"

	"relkat.dev/core/internal/envflag"
)

// Flags holds the process-wide set of RELKAT_DEBUG flags. It is populated by
// Init.
var Flags Config

// Config holds the set of known RELKAT_DEBUG flags.
//
// When adding, removing, or renaming a flag, also update the CLI help text in
// cmd/relkat.
type Config struct {
	// Strict is parsed from RELKAT_DEBUG, but no package reads it: setting
	// it enables no extra checks.
	Strict bool

	// LogTableau is parsed from RELKAT_DEBUG, but no package reads it:
	// setting it produces no trace.
	LogTableau bool

	// NoSubsumption is parsed from RELKAT_DEBUG, but no package reads it:
	// regular-tableau canonicalization and subsumption always run.
	NoSubsumption bool

	// Dot enables emission of the four Graphviz files named in spec.md 6
	// next to the input proof file.
	Dot bool `envflag:"default:true"`
}

// Init initializes Flags from the RELKAT_DEBUG environment variable. It is
// not named init because callers that never touch the environment (e.g.
// "relkat help") should not pay for it, and because a malformed environment
// variable should be a reportable error, not a panic.
func Init() error {
	return initOnce()
}

var initOnce = sync.OnceValue(func() error {
	return envflag.Init(&Flags, "RELKAT_DEBUG")
})

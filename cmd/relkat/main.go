// Command relkat decides relation-algebra inclusion goals ("L <= R") by
// cyclic tableau proof search over a proof file written in the catlang
// language (package catlang). See "relkat -h" for usage.
package main

import "os"

func main() {
	os.Exit(Main())
}

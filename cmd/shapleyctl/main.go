// SPDX-License-Identifier: MIT

// Command shapleyctl computes exact or sampled Shapley values for data
// owners in a boolean-query-provenance game.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// Command fraggen evolves populations of fragment-based molecular graphs.
//
// Usage:
//
//	fraggen run   --library lib.yaml --out ./best
//	fraggen check --library lib.yaml best/*.yaml
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

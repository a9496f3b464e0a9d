// Command catalogetl fetches the vendor product-catalog export, cleans it,
// and replace-loads it into the warehouse.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "catalogetl:", err)
		os.Exit(1)
	}
}

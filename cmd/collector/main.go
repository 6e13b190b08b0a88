// collector accepts pointer movement events over WebSocket and stores them.
// Usage: collector serve --config configs/collector.yaml
package main

import (
	"fmt"
	"os"

	"github.com/rickgao/cursorlog/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

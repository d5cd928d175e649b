// Command tutor answers questions about a folder of course materials using
// local retrieval-augmented generation.
package main

import (
	"os"

	"github.com/opencourse-labs/tutor-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

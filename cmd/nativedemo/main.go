// Command nativedemo runs the showcase applications against the headless
// platform and prints the native widget tree they leave behind.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/native/cmd/nativedemo/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

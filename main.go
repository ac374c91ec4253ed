// main is the entry point for the doralens CLI.
package main

import (
	"github.com/huangsam/doralens/cmd"
	"github.com/huangsam/doralens/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Cannot run doralens", err)
	}
}

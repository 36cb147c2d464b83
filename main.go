package main

import (
	"os"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/bianoble/userenv/cmd/userenv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"trivia-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "trivia-service:", err)
		os.Exit(1)
	}
}

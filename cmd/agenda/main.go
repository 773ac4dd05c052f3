package main

import (
	"log"
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}

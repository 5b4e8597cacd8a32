package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/cli"
)

func main() {
	// A missing .env file is fine; configuration has defaults.
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error (%s): %v\n", cli.ErrorKind(err), err)
		os.Exit(1)
	}
}

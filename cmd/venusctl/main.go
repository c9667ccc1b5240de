// Command venusctl drives the venus backend from the terminal: accounts,
// projects and images.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; the environment and flags still apply.
	_ = godotenv.Load()

	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		logFailure(err)
		os.Exit(1)
	}
}

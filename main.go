package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/abhisek/lexio/cmd"
)

func main() {
	// Optional; a missing .env file is fine.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

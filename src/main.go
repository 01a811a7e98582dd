package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for TELEGRAM_TOKEN and friends
	godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

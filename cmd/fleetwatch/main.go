package main

import (
	"github.com/joho/godotenv"
	"github.com/stationops/fleetwatch/internal/cli"
)

func main() {
	// Load .env if present; real config comes from viper.
	_ = godotenv.Load()

	cli.Execute()
}

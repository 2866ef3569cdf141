package main

import (
	"github.com/joho/godotenv"

	"github.com/s0up4200/overseerr-mcp/cmd"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Pick up OVERSEERR_URL / OVERSEERR_API_KEY from a local .env if present.
	_ = godotenv.Load()

	cmd.SetVersion(version, buildTime)
	cmd.Execute()
}

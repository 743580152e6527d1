package main

import (
	"os"
)

// @title Rescue Dashboard API
// @version 1.0
// @description Local API of the disaster dashboard client. Serves the synchronized incident collection and proxies backend analysis.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

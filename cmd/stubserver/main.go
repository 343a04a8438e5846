package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/naman03malhotra/vercel-commerce/internal/config"
	"github.com/naman03malhotra/vercel-commerce/internal/stubserver"
)

// Runs the fake commerce backend for local development. Point the
// storefront at it with SERVER_URL and matching SERVICE_TOKEN.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[stub] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	token := cfg.ServiceToken
	if token == "" {
		token = "stub-key"
	}

	stub := stubserver.New(token, logger)
	logger.Printf("starting stub backend on %s (service key %q)", cfg.StubAddr, token)
	if err := stub.Router().Run(cfg.StubAddr); err != nil {
		logger.Fatalf("stub backend: %v", err)
	}
}

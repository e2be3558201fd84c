// Command ledger_token mints a bearer token for local use against the API.
// It signs with the same JWT_SECRET and JWT_ISSUER the server loads.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/platform/config"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	actorID := flag.String("actor", "", "actor id placed in the token subject")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if *actorID == "" {
		logger.Error("-actor is required")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	token, err := utils.GenerateJWT(*actorID, cfg.JWTSecret, *ttl, cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}

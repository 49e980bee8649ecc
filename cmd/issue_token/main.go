// Command issue_token prints an access token for a user id, for local testing
// against the API.
//
//	go run ./cmd/issue_token -user 01J... -ttl 1h
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"exam-byte/internal/config"
	"exam-byte/internal/dto"
	"exam-byte/internal/service"
)

func main() {
	userID := flag.String("user", "", "user id to embed in the token")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		log.Fatal("-user is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("auth.jwt_secret is not configured")
	}

	token, err := service.NewTokenService(cfg.Auth.JWTSecret).CreateJWT(*userID, *ttl, dto.AccessTokenType)
	if err != nil {
		log.Fatalf("Failed to create token: %v", err)
	}
	fmt.Println(token)
}

package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"trivia-api/internal/auth"
	"trivia-api/internal/config"
)

// Prints a signed admin token for the configured secret.
func main() {
	subject := flag.String("subject", "admin", "token subject")
	scopes := flag.String("scopes", auth.ScopeQuestionsWrite, "space separated scopes to grant")
	ttl := flag.Duration("ttl", 0, "token lifetime; defaults to auth.token_ttl")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !cfg.AuthEnabled() {
		log.Fatal("auth.admin_secret is not set (APP_AUTH_ADMIN_SECRET)")
	}
	if *ttl > 0 {
		cfg.Auth.TokenTTL = *ttl
	}

	token, err := auth.NewTokenManager(cfg.Auth).Issue(*subject, strings.Fields(*scopes)...)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(token)
}

// Command devtoken mints a bearer token for local testing against the API.
// Production tokens come from the portal's identity service.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sjperalta/dpa-api/internal/config"
	"github.com/sjperalta/dpa-api/internal/middleware"
	"github.com/sjperalta/dpa-api/internal/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	userID := flag.Uint("user", 0, "member id carried in the token")
	email := flag.String("email", "", "member email")
	role := flag.String("role", models.RoleMember, "admin or member")
	hours := flag.Int("hours", 0, "lifetime in hours (defaults to JWT_EXPIRATION_HOURS)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to mint tokens in production")
	}
	if *userID == 0 {
		log.Fatal("-user is required")
	}
	if *role != models.RoleMember && *role != models.RoleAdmin {
		log.Fatalf("Unknown role %q", *role)
	}

	ttl := time.Duration(cfg.JWTExpirationHours) * time.Hour
	if *hours > 0 {
		ttl = time.Duration(*hours) * time.Hour
	}

	token, err := middleware.IssueToken(cfg.JWTSecret, uint(*userID), *email, *role, ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}

// seed inserts a verified admin and a few demo users into the local dev
// database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/askarovb/auth-service/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

type userSpec struct {
	name     string
	email    string
	password string
	role     string
	verified bool
}

var users = []userSpec{
	{"Admin", "admin@test.local", "admin-password-1", "admin", true},

	// Verified regular users — can log in straight away
	{"Ada Lovelace", "ada@test.local", "correct-horse-1", "user", true},
	{"Grace Hopper", "grace@test.local", "correct-horse-2", "user", true},

	// Unverified — useful for exercising verify/resend flows
	{"Alan Turing", "alan@test.local", "correct-horse-3", "user", false},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	// Low cost: these are throwaway dev credentials.
	const seedBcryptCost = 6

	var inserted, skipped int
	for _, spec := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(spec.password), seedBcryptCost)
		if err != nil {
			log.Fatalf("hash password for %s: %v", spec.email, err)
		}

		var id string
		err = pool.QueryRow(ctx, `
			INSERT INTO users (name, email, password_hash, role, is_verified)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (email) DO NOTHING
			RETURNING id`,
			spec.name, spec.email, string(hash), spec.role, spec.verified,
		).Scan(&id)
		if err != nil {
			// no row returned means the user already existed
			skipped++
			continue
		}
		inserted++
		fmt.Printf("  %-22s %s\n", spec.email, id)
	}

	fmt.Println()
	fmt.Printf("Seed complete: %d inserted, %d already existing\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in as a verified user:")
	fmt.Println()
	fmt.Println("    curl -s -X POST http://localhost:8080/auth/login \\")
	fmt.Println("      -H 'Content-Type: application/json' \\")
	fmt.Println("      -d '{\"email\":\"ada@test.local\",\"password\":\"correct-horse-1\"}'")
	fmt.Println("    # → {\"token\":\"eyJ...\",\"user\":{...}}")
	fmt.Println()
	fmt.Println("  Step 2 — call an identity-requiring route:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/auth/me -H \"Authorization: Bearer $JWT\"")
	fmt.Println()
	fmt.Println("  Step 3 — exercise the reset flow (link appears in the server log in ENV=local):")
	fmt.Println()
	fmt.Println("    curl -s -X POST http://localhost:8080/auth/forgot-password \\")
	fmt.Println("      -H 'Content-Type: application/json' \\")
	fmt.Println("      -d '{\"email\":\"ada@test.local\"}'")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sudo-init-do/bloghub/internal/config"
	"github.com/sudo-init-do/bloghub/internal/db"
)

func main() {
	email := flag.String("email", "", "email address of the user to promote")
	flag.Parse()

	if strings.TrimSpace(*email) == "" {
		fmt.Fprintln(os.Stderr, "usage: promote_admin -email user@example.com")
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db.Init(cfg)
	defer db.Conn.Close()

	tag, err := db.Conn.Exec(context.Background(),
		`UPDATE users SET role = 'admin', updated_at = NOW() WHERE lower(email) = lower($1)`,
		strings.TrimSpace(*email))
	if err != nil {
		log.Fatalf("promote user: %v", err)
	}
	if tag.RowsAffected() == 0 {
		log.Fatalf("no user found with email %s", *email)
	}

	fmt.Printf("✅ %s is now an administrator\n", *email)
}

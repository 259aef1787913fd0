// Command create-staff bootstraps a municipal staff account so the city
// hall can start triaging relatos.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/lucianosaints/app-marica-cidadao/internal/config"
	"github.com/lucianosaints/app-marica-cidadao/internal/database"
	"github.com/lucianosaints/app-marica-cidadao/internal/repository/postgres"
	"github.com/lucianosaints/app-marica-cidadao/internal/utils"
)

func main() {
	username := flag.String("username", "prefeitura", "staff username")
	email := flag.String("email", "", "staff email")
	name := flag.String("name", "", "first name")
	password := flag.String("password", "", "password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("usage: create-staff -username <u> -password <p> [-email <e>] [-name <n>]")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash failed: %v", err)
	}

	u, err := postgres.NewUserRepo(pool).CreateStaff(ctx, *username, *email, *name, hash)
	if err != nil {
		log.Fatalf("create staff failed: %v", err)
	}
	fmt.Printf("staff user created: %s (id %s)\n", u.Username, u.ID)
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"laporrt/backend/internal/app"
	"laporrt/backend/internal/config"
	"laporrt/backend/internal/models"
	"laporrt/backend/internal/storage"

	"github.com/joho/godotenv"
)

const usage = `Usage: admin <command> [args]

Commands:
  set-role <email> <role>    change the role of an account (warga, admin, ketua_rt)
  delete-user <email>        delete an account
  export-ledger [file]       write the ledger CSV to file (default: its download name)
  seed                       fill empty collections with the demo community
  migrate                    create or update the PostgreSQL tables`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	// The CLI seeds only when asked to.
	cfg.LocalSeed = false
	cfg.DBAutoMigrate = false

	ctx := context.Background()
	a, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	defer a.Close()

	command := os.Args[1]

	switch command {
	case "set-role":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin set-role <email> <role>")
			os.Exit(1)
		}
		account, err := setRole(ctx, a.Storage, os.Args[2], models.Role(os.Args[3]))
		if err != nil {
			log.Fatalf("Error setting role: %v", err)
		}
		fmt.Printf("Account %s (%s) is now %s.\n", account.Email, account.ID, account.Role)
	case "delete-user":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin delete-user <email>")
			os.Exit(1)
		}
		if err := deleteUser(ctx, a.Storage, os.Args[2]); err != nil {
			log.Fatalf("Error deleting user: %v", err)
		}
		fmt.Printf("Account %s has been deleted.\n", os.Args[2])
	case "export-ledger":
		name, data, err := a.Finances.ExportCSV(ctx)
		if err != nil {
			log.Fatalf("Error exporting ledger: %v", err)
		}
		if len(os.Args) > 2 {
			name = os.Args[2]
		}
		if err := os.WriteFile(name, data, 0o644); err != nil {
			log.Fatalf("Error writing %s: %v", name, err)
		}
		fmt.Printf("Ledger written to %s.\n", name)
	case "seed":
		if err := a.Seed(ctx); err != nil {
			log.Fatalf("Error seeding: %v", err)
		}
		fmt.Println("Demo data seeded.")
	case "migrate":
		if err := a.Migrate(); err != nil {
			log.Fatalf("Error migrating: %v", err)
		}
		fmt.Println("Migrations complete.")
	default:
		fmt.Println("Unknown command")
		fmt.Println(usage)
		os.Exit(1)
	}
}

func setRole(ctx context.Context, s storage.Storage, email string, role models.Role) (*models.Account, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	account, err := s.GetAccountByEmail(ctx, storage.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("no account with email %s", email)
	}
	updated, err := s.UpdateAccount(ctx, account.ID, models.Fields{"role": role})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("account %s disappeared", account.ID)
	}
	return updated, nil
}

func deleteUser(ctx context.Context, s storage.Storage, email string) error {
	account, err := s.GetAccountByEmail(ctx, storage.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("no account with email %s", email)
	}
	return s.DeleteAccount(ctx, account.ID)
}

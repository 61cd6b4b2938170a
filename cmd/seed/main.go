// Package main seeds demo accounts and API keys for local development.
// Raw API keys are printed once; only their hashes are stored.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"

	"tally/internal/config"
	"tally/internal/models"
	"tally/internal/repositories"
	"tally/internal/services/auth"
	"tally/internal/services/wallet"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.CloseDB()

	var existing models.APIKey
	if err := repositories.DB.Where("name = ?", "seed-admin").First(&existing).Error; err == nil {
		log.Println("Database already seeded")
		return
	}

	apiKeyRepo := repositories.NewAPIKeyRepository(repositories.DB)
	for _, def := range []struct {
		name string
		role string
	}{
		{name: "seed-admin", role: models.APIKeyRoleAdmin},
		{name: "seed-service", role: models.APIKeyRoleService},
	} {
		rawKey := newRawKey()
		key := &models.APIKey{
			KeyHash:  auth.HashKey(rawKey),
			Name:     def.name,
			Role:     def.role,
			IsActive: true,
		}
		if err := apiKeyRepo.Create(key); err != nil {
			log.Fatalf("Failed to create api key %s: %v", def.name, err)
		}
		log.Printf("Created %s key (%s): %s", def.role, def.name, rawKey)
	}

	ledgerRepo := repositories.NewLedgerRepository(repositories.DB)
	walletService := wallet.NewService(ledgerRepo, nil, nil)

	// Opening balances go through the engine so every balance is backed
	// by a ledger entry.
	seeds := []struct {
		account models.Account
		opening int64
	}{
		{account: models.Account{Username: "alice", Email: "alice@example.com"}, opening: 100000},
		{account: models.Account{Username: "bob", Email: "bob@example.com"}, opening: 50000},
		{account: models.Account{Username: "charlie", Email: "charlie@example.com"}},
	}
	for i := range seeds {
		acct := &seeds[i].account
		if err := ledgerRepo.CreateAccount(acct); err != nil {
			log.Fatalf("Failed to create account %s: %v", acct.Username, err)
		}
		if seeds[i].opening > 0 {
			_, err := walletService.Credit(context.Background(), wallet.Operation{
				AccountID:   acct.ID,
				Amount:      seeds[i].opening,
				Description: "Opening balance",
			})
			if err != nil {
				log.Fatalf("Failed to credit opening balance for %s: %v", acct.Username, err)
			}
		}
		log.Printf("Created account %s (%s) with balance %d", acct.Username, acct.ID, seeds[i].opening)
	}

	log.Println("✅ Seed completed successfully!")
}

func newRawKey() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("Failed to generate api key: %v", err)
	}
	return hex.EncodeToString(buf)
}

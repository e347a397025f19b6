package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hollis-dev/SatchelBot_Go/internal/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default/environment variables")
	}

	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	dbPool, err := database.NewPool(connString, 5, 5*time.Minute, 30*time.Minute)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	ctx := context.Background()

	// Dump Users
	fmt.Println("--- Users ---")
	rows, err := dbPool.Query(ctx, "SELECT user_id, discord_id, username, created_at FROM users")
	if err != nil {
		log.Printf("Failed to query users: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var id, discordID, username string
			var createdAt time.Time
			if err := rows.Scan(&id, &discordID, &username, &createdAt); err != nil {
				log.Printf("Failed to scan user: %v", err)
			}
			fmt.Printf("ID: %s, DiscordID: %s, Username: %s, CreatedAt: %v\n", id, discordID, username, createdAt)
		}
	}

	// Dump Balances
	fmt.Println("\n--- Balances ---")
	query := `
		SELECT u.username, b.guild_id, b.wallet, b.bank
		FROM balances b
		JOIN users u ON b.user_id = u.user_id
	`
	rows, err = dbPool.Query(ctx, query)
	if err != nil {
		log.Printf("Failed to query balances: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var username, guildID string
			var wallet, bank int64
			if err := rows.Scan(&username, &guildID, &wallet, &bank); err != nil {
				log.Printf("Failed to scan balance: %v", err)
			}
			fmt.Printf("User: %s, Guild: %s, Wallet: %d, Bank: %d\n", username, guildID, wallet, bank)
		}
	}

	// Dump Items
	fmt.Println("\n--- Items ---")
	rows, err = dbPool.Query(ctx, "SELECT item_id, guild_id, name, price, stock, usable, sellable FROM items")
	if err != nil {
		log.Printf("Failed to query items: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var id, price, stock int
			var guildID, name string
			var usable, sellable bool
			if err := rows.Scan(&id, &guildID, &name, &price, &stock, &usable, &sellable); err != nil {
				log.Printf("Failed to scan item: %v", err)
			}
			fmt.Printf("ID: %d, Guild: %s, Name: %s, Price: %d, Stock: %d, Usable: %t, Sellable: %t\n",
				id, guildID, name, price, stock, usable, sellable)
		}
	}

	// Dump Backpacks
	fmt.Println("\n--- Backpacks ---")
	rows, err = dbPool.Query(ctx, "SELECT backpack_id, guild_id, name, owner_id, owner_type, capacity FROM backpacks")
	if err != nil {
		log.Printf("Failed to query backpacks: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var id, guildID, name, ownerID, ownerType string
			var capacity int
			if err := rows.Scan(&id, &guildID, &name, &ownerID, &ownerType, &capacity); err != nil {
				log.Printf("Failed to scan backpack: %v", err)
			}
			fmt.Printf("ID: %s, Guild: %s, Name: %s, Owner: %s (%s), Capacity: %d\n",
				id, guildID, name, ownerID, ownerType, capacity)
		}
	}
}

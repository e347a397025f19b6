package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// BalanceCommand returns the balance command definition and handler
func BalanceCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "balance",
		Description: "Check your wallet and bank balances",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			actor := getActor(i)
			if _, err := client.RegisterUser(actor.DiscordID, actor.Username); err != nil {
				return "", fmt.Errorf("failed to register user: %w", err)
			}

			wallet, bank, err := client.GetBalance(actor.DiscordID, actor.GuildID)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("👛 Wallet: **%d**\n🏦 Bank: **%d**", wallet, bank), nil
		}, ResponseConfig{
			Title: "💰 Balances",
			Color: 0xf1c40f, // Gold
		})
	}

	return cmd, handler
}

// DepositCommand returns the deposit command definition and handler
func DepositCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "deposit",
		Description: "Move money from your wallet into the bank",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Amount to deposit",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			amount := int(getOptions(i)[0].IntValue())
			moved, err := client.Deposit(getActor(i), amount)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Moved **%d** into the bank.", moved), nil
		}, ResponseConfig{
			Title: "🏦 Deposit Complete",
			Color: 0x2ecc71, // Green
		})
	}

	return cmd, handler
}

// WithdrawCommand returns the withdraw command definition and handler
func WithdrawCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "withdraw",
		Description: "Move money from the bank back to your wallet",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Amount to withdraw",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			amount := int(getOptions(i)[0].IntValue())
			moved, err := client.Withdraw(getActor(i), amount)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Moved **%d** back to your wallet.", moved), nil
		}, ResponseConfig{
			Title: "🏦 Withdrawal Complete",
			Color: 0x2ecc71, // Green
		})
	}

	return cmd, handler
}

// BuyCommand returns the buy command definition and handler
func BuyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "buy",
		Description: "Purchase an item from the shop",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "item",
				Description: "Item name to buy",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "quantity",
				Description: "Quantity to buy (default: 1)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			options := getOptions(i)
			itemName := options[0].StringValue()
			quantity := 1
			if len(options) > 1 {
				quantity = int(options[1].IntValue())
			}

			cost, err := client.BuyItem(getActor(i), itemName, quantity)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Bought **%d x %s** for **%d**.", quantity, itemName, cost), nil
		}, ResponseConfig{
			Title: "🛒 Purchase Complete",
			Color: 0x2ecc71, // Green
		})
	}

	return cmd, handler
}

// SellCommand returns the sell command definition and handler
func SellCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "sell",
		Description: "Sell an item from your inventory",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "item",
				Description: "Item name to sell",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "quantity",
				Description: "Quantity to sell (default: 1)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			options := getOptions(i)
			itemName := options[0].StringValue()
			quantity := 1
			if len(options) > 1 {
				quantity = int(options[1].IntValue())
			}

			gained, err := client.SellItem(getActor(i), itemName, quantity)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Sold **%d x %s** for **%d**.", quantity, itemName, gained), nil
		}, ResponseConfig{
			Title: "💵 Sale Complete",
			Color: 0xf39c12, // Orange
		})
	}

	return cmd, handler
}

// ShopCommand returns the shop command definition and handler
func ShopCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "shop",
		Description: "Browse the items for sale",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			items, err := client.ListItems(i.GuildID)
			if err != nil {
				return "", err
			}

			out := ""
			for _, it := range items {
				if it.Price <= 0 {
					continue
				}
				stock := "∞"
				if it.Stock >= 0 {
					stock = fmt.Sprintf("%d", it.Stock)
				}
				out += fmt.Sprintf("**%s** — %d coins (stock: %s)\n", it.DisplayName, it.Price, stock)
			}
			if out == "" {
				return "The shop is empty.", nil
			}
			return out, nil
		}, ResponseConfig{
			Title: "🏪 Shop",
			Color: 0x3498db, // Blue
		})
	}

	return cmd, handler
}

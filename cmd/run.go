package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	logrus "github.com/sirupsen/logrus"

	"betbot/bot"
	"betbot/config"
	"betbot/database"
	"betbot/events"
	"betbot/repository"
	"betbot/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting betbot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	log.Println("Initializing event bus...")
	eventBus := events.NewBus()
	subscribeAuditLog(eventBus)
	log.Println("Event bus initialized successfully")

	// Initialize unit of work factory
	log.Println("Initializing unit of work factory...")
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	log.Println("Unit of work factory initialized successfully")

	// Initialize services
	log.Println("Initializing services...")
	userService := service.NewUserService(uowFactory, cfg)
	bettingService := service.NewBettingService(uowFactory)
	economyService := service.NewEconomyService(uowFactory, cfg)
	log.Println("Services initialized successfully")

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token: cfg.DiscordToken,
	}
	discordBot, err := bot.New(botConfig, userService, bettingService, economyService)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	// Close Discord bot connection
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}

// subscribeAuditLog attaches structured audit logging to the domain events
func subscribeAuditLog(bus *events.Bus) {
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		e, ok := event.(events.BalanceChangeEvent)
		if !ok {
			return
		}
		logrus.WithFields(logrus.Fields{
			"userID":          e.UserID,
			"oldBalance":      e.OldBalance,
			"newBalance":      e.NewBalance,
			"changeAmount":    e.ChangeAmount,
			"transactionType": e.TransactionType,
		}).Info("Balance changed")
	})

	bus.Subscribe(events.EventTypeUserCreated, func(ctx context.Context, event events.Event) {
		e, ok := event.(events.UserCreatedEvent)
		if !ok {
			return
		}
		logrus.WithFields(logrus.Fields{
			"userID":         e.UserID,
			"username":       e.Username,
			"initialBalance": e.InitialBalance,
		}).Info("User created")
	})

	bus.Subscribe(events.EventTypeStakePlaced, func(ctx context.Context, event events.Event) {
		e, ok := event.(events.StakePlacedEvent)
		if !ok {
			return
		}
		logrus.WithFields(logrus.Fields{
			"messageID":    e.MessageID,
			"userID":       e.UserID,
			"chosenOption": e.ChosenOption,
			"amount":       e.Amount,
		}).Info("Stake placed")
	})

	bus.Subscribe(events.EventTypeBetSettled, func(ctx context.Context, event events.Event) {
		e, ok := event.(events.BetSettledEvent)
		if !ok {
			return
		}
		logrus.WithFields(logrus.Fields{
			"messageID":     e.MessageID,
			"settledBy":     e.SettledBy,
			"winningOption": e.WinningOption,
			"tie":           e.Tie,
			"winnerCount":   e.WinnerCount,
		}).Info("Bet settled")
	})
}

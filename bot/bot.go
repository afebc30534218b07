package bot

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"betbot/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token string
}

type Bot struct {
	config         Config
	session        *discordgo.Session
	userService    service.UserService
	bettingService service.BettingService
	economyService service.EconomyService
}

func New(config Config, userService service.UserService, bettingService service.BettingService, economyService service.EconomyService) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentsGuildMessages

	bot := &Bot{
		config:         config,
		session:        dg,
		userService:    userService,
		bettingService: bettingService,
		economyService: economyService,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component and modal interaction handlers
	dg.AddHandler(bot.handleBetInteractions)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "create_bet":
		b.handleCreateBet(s, i)
	case "money":
		b.handleMoney(s, i)
	case "profile":
		b.handleProfile(s, i)
	}
}

// handleBetInteractions routes bet button presses and amount modal submits
func (b *Bot) handleBetInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case strings.HasPrefix(customID, "bet_option_"):
			b.handleOptionButton(s, i)
		case customID == "bet_end":
			b.handleEndButton(s, i)
		}

	case discordgo.InteractionModalSubmit:
		if strings.HasPrefix(i.ModalSubmitData().CustomID, "bet_amount_modal_") {
			b.handleAmountModal(s, i)
		}
	}
}

func (b *Bot) respondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

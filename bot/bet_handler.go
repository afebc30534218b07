package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"betbot/bot/common"
	"betbot/models"
	"betbot/service"

	"github.com/bwmarrin/discordgo"
)

// handleCreateBet handles the /create_bet slash command. The announcement
// message is posted first; its ID becomes the bet's key.
func (b *Bot) handleCreateBet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var title, option1, option2 string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "title":
			title = opt.StringValue()
		case "option1":
			option1 = opt.StringValue()
		case "option2":
			option2 = opt.StringValue()
		}
	}

	if option1 == option2 {
		b.respondWithError(s, i, "The two options must be different.")
		return
	}

	creatorID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	// First touch creates the creator's balance record
	if _, err := b.userService.GetOrCreateUser(ctx, creatorID, i.Member.User.Username); err != nil {
		log.Errorf("Error getting/creating user %d: %v", creatorID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	embed := buildBetEmbed(title, option1, option2)
	components := buildBetComponents(option1, option2)

	if err := common.RespondWithEmbed(s, i, embed, components, false); err != nil {
		log.Errorf("Error responding to create_bet: %v", err)
		return
	}

	// Retrieve the announcement message to learn its platform-assigned ID
	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		log.Errorf("Error fetching bet announcement message: %v", err)
		return
	}

	messageID, err := strconv.ParseInt(msg.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing message ID %s: %v", msg.ID, err)
		return
	}

	if _, err := b.bettingService.CreateBet(ctx, messageID, creatorID, title, option1, option2); err != nil {
		log.Errorf("Error creating bet %d: %v", messageID, err)

		content := "❌ Failed to create the bet. Please try again."
		emptyComponents := []discordgo.MessageComponent{}
		_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content:    &content,
			Embeds:     &[]*discordgo.MessageEmbed{},
			Components: &emptyComponents,
		})
		if err != nil {
			log.Errorf("Error editing failed bet message: %v", err)
		}
		return
	}

	log.WithFields(log.Fields{
		"messageID": messageID,
		"creatorID": creatorID,
		"title":     title,
	}).Info("Created bet")
}

// handleOptionButton opens the amount modal for the pressed option. The
// modal custom ID carries the bet key and option number, since a modal
// submit arrives without the originating message.
func (b *Bot) handleOptionButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	parts := strings.Split(customID, "_")
	if len(parts) != 3 {
		b.respondWithError(s, i, "Invalid interaction data.")
		return
	}

	optionNumber, err := strconv.Atoi(parts[2])
	if err != nil || (optionNumber != 1 && optionNumber != 2) {
		b.respondWithError(s, i, "Invalid interaction data.")
		return
	}

	modal := buildAmountModal(i.Message.ID, optionNumber)
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &modal,
	})
	if err != nil {
		log.Errorf("Error showing amount modal: %v", err)
	}
}

// handleAmountModal validates the free-text amount and places the stake.
// Rejections are ephemeral and leave every store untouched.
func (b *Bot) handleAmountModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	// bet_amount_modal_<messageID>_<optionNumber>
	parts := strings.Split(i.ModalSubmitData().CustomID, "_")
	if len(parts) != 5 {
		b.respondWithError(s, i, "Invalid modal data.")
		return
	}

	messageID, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		b.respondWithError(s, i, "Invalid modal data.")
		return
	}

	optionNumber, err := strconv.Atoi(parts[4])
	if err != nil {
		b.respondWithError(s, i, "Invalid modal data.")
		return
	}

	amountStr := strings.TrimSpace(
		i.ModalSubmitData().Components[0].(*discordgo.ActionsRow).Components[0].(*discordgo.TextInput).Value,
	)

	// Digits only: no sign, decimal point or separators
	if !isDigits(amountStr) {
		b.respondWithError(s, i, "Please enter a valid number.")
		return
	}

	amount, err := strconv.ParseInt(amountStr, 10, 64)
	if err != nil {
		b.respondWithError(s, i, "Please enter a valid number.")
		return
	}

	if amount <= 0 {
		b.respondWithError(s, i, "You must bet a positive amount.")
		return
	}

	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if _, err := b.userService.GetOrCreateUser(ctx, userID, i.Member.User.Username); err != nil {
		log.Errorf("Error getting/creating user %d: %v", userID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	receipt, err := b.bettingService.PlaceStake(ctx, messageID, userID, optionNumber, amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientBalance):
			b.respondWithError(s, i, "You don't have enough coins to place that bet.")
		case errors.Is(err, service.ErrBetNotFound):
			b.respondWithError(s, i, "Bet data not found.")
		default:
			log.Errorf("Error placing stake on bet %d for user %d: %v", messageID, userID, err)
			b.respondWithError(s, i, "Unable to place your bet. Please try again.")
		}
		return
	}

	message := fmt.Sprintf("You've placed a bet of %s coins on *%s*! Your new balance: %s coins.",
		FormatBalance(receipt.Amount), receipt.ChosenOption, FormatBalance(receipt.NewBalance))
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error confirming stake: %v", err)
	}
}

// handleEndButton settles the bet, announces the outcome and disables the
// bet's controls
func (b *Bot) handleEndButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	messageID, err := strconv.ParseInt(i.Message.ID, 10, 64)
	if err != nil {
		b.respondWithError(s, i, "Invalid interaction data.")
		return
	}

	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	isAdmin := i.Member.Permissions&discordgo.PermissionAdministrator != 0

	result, err := b.bettingService.SettleBet(ctx, messageID, userID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthorized):
			b.respondWithError(s, i, "You are not allowed to end this bet!")
		case errors.Is(err, service.ErrBetNotFound):
			b.respondWithError(s, i, "Bet data not found.")
		default:
			log.Errorf("Error settling bet %d: %v", messageID, err)
			b.respondWithError(s, i, "Unable to end the bet. Please try again.")
		}
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: b.formatSettlementAnnouncement(s, i.GuildID, result),
		},
	})
	if err != nil {
		log.Errorf("Error announcing settlement: %v", err)
	}

	// The bet is gone; its controls stay visible but dead
	disabled := common.DisableComponents(i.Message.Components)
	_, err = s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    i.ChannelID,
		ID:         i.Message.ID,
		Components: &disabled,
	})
	if err != nil {
		log.Errorf("Error disabling bet controls: %v", err)
	}

	log.WithFields(log.Fields{
		"messageID":     messageID,
		"settledBy":     userID,
		"tie":           result.Tie,
		"winningOption": result.WinningOption,
		"winnerCount":   len(result.Winners),
	}).Info("Settled bet")
}

// formatSettlementAnnouncement builds the public outcome message, one
// mention per winning stake row
func (b *Bot) formatSettlementAnnouncement(s *discordgo.Session, guildID string, result *models.SettlementResult) string {
	if result.Tie {
		return fmt.Sprintf("The bet *%s* ended in a tie. No winners!", result.Bet.Title)
	}

	mentions := make([]string, 0, len(result.Winners))
	for _, winner := range result.Winners {
		mentions = append(mentions, winnerMention(s, guildID, winner.UserID))
	}

	return fmt.Sprintf("The bet *%s* has ended!\nWinning option: **%s**\nWinners: %s\nThey each received %dx their bet!",
		result.Bet.Title, result.WinningOption, strings.Join(mentions, ", "), service.PayoutMultiplier)
}

// winnerMention resolves a user ID to a mention, falling back to the raw
// identifier when the member is no longer resolvable
func winnerMention(s *discordgo.Session, guildID string, userID int64) string {
	member, err := s.GuildMember(guildID, strconv.FormatInt(userID, 10))
	if err == nil && member != nil && member.User != nil {
		return member.User.Mention()
	}
	return fmt.Sprintf("User ID: %d", userID)
}

// isDigits reports whether s is a non-empty string of ASCII digits
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

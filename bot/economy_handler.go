package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"betbot/service"

	"github.com/bwmarrin/discordgo"
)

// handleMoney handles the /money daily reward command
func (b *Bot) handleMoney(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := b.economyService.ClaimDaily(ctx, userID, i.Member.User.Username)
	if err != nil {
		if errors.Is(err, service.ErrDailyCooldownActive) {
			b.respondWithError(s, i, "You have already claimed your daily coins. Try again later!")
			return
		}
		log.Errorf("Error claiming daily reward for user %d: %v", userID, err)
		b.respondWithError(s, i, "Unable to claim your daily coins. Please try again.")
		return
	}

	message := fmt.Sprintf("%s claimed their daily %s coins! New balance: %s coins.",
		i.Member.User.Mention(), FormatBalance(result.Amount), FormatBalance(result.NewBalance))
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
		},
	})
	if err != nil {
		log.Errorf("Error responding to money command: %v", err)
	}
}

// handleProfile handles the /profile balance lookup command. Looking at a
// profile is a first touch like any other: an unseen user is created at
// the starting balance.
func (b *Bot) handleProfile(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "You must specify a user.")
		return
	}

	target := options[0].UserValue(s)
	if target == nil {
		b.respondWithError(s, i, "Unable to resolve that user.")
		return
	}

	targetID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", target.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	user, err := b.userService.GetOrCreateUser(ctx, targetID, target.Username)
	if err != nil {
		log.Errorf("Error getting/creating user %d: %v", targetID, err)
		b.respondWithError(s, i, "Unable to look up that profile. Please try again.")
		return
	}

	message := fmt.Sprintf("%s's balance: %s coins.", target.Username, FormatBalance(user.Balance))
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
		},
	})
	if err != nil {
		log.Errorf("Error responding to profile command: %v", err)
	}
}

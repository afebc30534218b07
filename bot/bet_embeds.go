package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// buildBetEmbed builds the announcement embed for a new bet
func buildBetEmbed(title, option1, option2 string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎲 %s", title),
		Description: "Pick an option below to place your bet!",
		Color:       0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Option 1",
				Value:  option1,
				Inline: true,
			},
			{
				Name:   "Option 2",
				Value:  option2,
				Inline: true,
			},
		},
	}
}

// buildBetComponents builds the option and end buttons attached to the
// bet announcement. The custom IDs are static: the bet is keyed by the
// message the buttons live on.
func buildBetComponents(option1, option2 string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    option1,
					Style:    discordgo.PrimaryButton,
					CustomID: "bet_option_1",
				},
				discordgo.Button{
					Label:    option2,
					Style:    discordgo.PrimaryButton,
					CustomID: "bet_option_2",
				},
				discordgo.Button{
					Label:    "End Bet",
					Style:    discordgo.DangerButton,
					CustomID: "bet_end",
				},
			},
		},
	}
}

// buildAmountModal builds the stake amount modal. The custom ID carries
// the bet's message ID and the option number so the submit handler can
// reconstruct the pending stake without server-side state.
func buildAmountModal(messageID string, optionNumber int) discordgo.InteractionResponseData {
	return discordgo.InteractionResponseData{
		CustomID: fmt.Sprintf("bet_amount_modal_%s_%d", messageID, optionNumber),
		Title:    "Place Your Bet",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "bet_amount",
						Label:       "Amount to bet",
						Style:       discordgo.TextInputShort,
						Placeholder: "Enter a whole number of coins",
						Required:    true,
						MaxLength:   18,
					},
				},
			},
		},
	}
}

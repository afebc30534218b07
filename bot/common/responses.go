package common

import (
	"github.com/bwmarrin/discordgo"
)

// RespondWithEmbed sends an embed response to an interaction
func RespondWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}

	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	if len(components) > 0 {
		data.Components = components
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// DisableComponents returns a copy of the components with all buttons and
// select menus disabled. Components decoded from a received message are
// pointers, which is what the type switch expects.
func DisableComponents(components []discordgo.MessageComponent) []discordgo.MessageComponent {
	disabled := make([]discordgo.MessageComponent, len(components))

	for i, component := range components {
		if actionRow, ok := component.(*discordgo.ActionsRow); ok {
			newRow := &discordgo.ActionsRow{
				Components: make([]discordgo.MessageComponent, len(actionRow.Components)),
			}

			for j, comp := range actionRow.Components {
				switch c := comp.(type) {
				case *discordgo.Button:
					newButton := *c
					newButton.Disabled = true
					newRow.Components[j] = &newButton
				case *discordgo.SelectMenu:
					newMenu := *c
					newMenu.Disabled = true
					newRow.Components[j] = &newMenu
				default:
					newRow.Components[j] = comp
				}
			}

			disabled[i] = newRow
		} else {
			disabled[i] = component
		}
	}

	return disabled
}

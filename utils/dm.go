package utils

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// SendDirectMessage delivers a text DM to a user. Returns whether the
// message was delivered; the caller logs the outcome but a closed-DMs
// failure is never fatal.
func SendDirectMessage(s *discordgo.Session, userID, message string) bool {
	channel, err := s.UserChannelCreate(userID)
	if err != nil {
		log.Printf("Could not open DM channel with user %s: %v", userID, err)
		return false
	}
	if _, err := s.ChannelMessageSend(channel.ID, message); err != nil {
		log.Printf("Could not deliver DM to user %s: %v", userID, err)
		return false
	}
	return true
}

// SendDirectEmbed delivers an embed DM to a user. Same delivery semantics
// as SendDirectMessage.
func SendDirectEmbed(s *discordgo.Session, userID string, embed *discordgo.MessageEmbed) bool {
	channel, err := s.UserChannelCreate(userID)
	if err != nil {
		log.Printf("Could not open DM channel with user %s: %v", userID, err)
		return false
	}
	if _, err := s.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		log.Printf("Could not deliver embed DM to user %s: %v", userID, err)
		return false
	}
	return true
}

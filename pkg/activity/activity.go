// Package activity implements the Bot Framework Activity dialect: the
// wire schema, the bot turn handler and the reply connector.
package activity

// Activity type discriminators handled by the bot.
const (
	TypeMessage            = "message"
	TypeConversationUpdate = "conversationUpdate"
)

// ChannelAccount identifies a user or bot on a channel.
type ChannelAccount struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// ConversationAccount identifies the conversation an activity belongs to.
type ConversationAccount struct {
	ID string `json:"id,omitempty"`
}

// Activity is the Bot Framework envelope. Only the fields this bot
// consumes or echoes are modeled; anything else passes through the
// transport untouched.
type Activity struct {
	Type         string               `json:"type,omitempty"`
	ID           string               `json:"id,omitempty"`
	Text         string               `json:"text,omitempty"`
	ServiceURL   string               `json:"serviceUrl,omitempty"`
	ChannelID    string               `json:"channelId,omitempty"`
	Conversation *ConversationAccount `json:"conversation,omitempty"`
	From         *ChannelAccount      `json:"from,omitempty"`
	Recipient    *ChannelAccount      `json:"recipient,omitempty"`
	ReplyToID    string               `json:"replyToId,omitempty"`
	MembersAdded []ChannelAccount     `json:"membersAdded,omitempty"`
}

// Reply builds a message activity answering this one, swapping sender and
// recipient and threading the conversation.
func (a *Activity) Reply(text string) *Activity {
	reply := &Activity{
		Type:         TypeMessage,
		Text:         text,
		ServiceURL:   a.ServiceURL,
		ChannelID:    a.ChannelID,
		Conversation: a.Conversation,
		ReplyToID:    a.ID,
	}
	if a.Recipient != nil {
		reply.From = a.Recipient
	}
	if a.From != nil {
		reply.Recipient = a.From
	}
	return reply
}

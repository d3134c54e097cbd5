// Package activity models the turn events exchanged with the driving
// conversation framework.
package activity

import "github.com/bellevuewa/chatbot-multilingual/internal/content"

// Activity types that cross this service's boundary.
const (
	TypeMessage            = "message"
	TypeConversationUpdate = "conversationUpdate"
	TypeTrace              = "trace"
)

// Account identifies a conversation participant.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Activity is one turn event: an inbound user message, an outbound bot
// reply, or a membership update.
type Activity struct {
	Type         string                 `json:"type" binding:"required"`
	ID           string                 `json:"id,omitempty"`
	Text         string                 `json:"text,omitempty"`
	Value        map[string]interface{} `json:"value,omitempty"`
	Attachments  []content.Attachment   `json:"attachments,omitempty"`
	Conversation Account                `json:"conversation"`
	From         Account                `json:"from,omitempty"`
	Recipient    Account                `json:"recipient,omitempty"`
	MembersAdded []Account              `json:"membersAdded,omitempty"`
}

// IsMessage reports whether the activity is a user-visible message.
func (a *Activity) IsMessage() bool {
	return a.Type == TypeMessage
}

// StringValue returns the named field of the structured value payload.
func (a *Activity) StringValue(key string) (string, bool) {
	if a.Value == nil {
		return "", false
	}
	v, ok := a.Value[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// IntValue returns the named numeric field of the structured value
// payload. JSON numbers decode as float64.
func (a *Activity) IntValue(key string) (int, bool) {
	if a.Value == nil {
		return 0, false
	}
	switch v := a.Value[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

package telegram

// Update is one inbound bot-framework event as delivered to the webhook.
// Only message updates carry analyzable text; other update kinds are
// acknowledged and ignored.
type Update struct {
	UpdateID int64    `json:"update_id" validate:"required"`
	Message  *Message `json:"message"`
}

// Message is the chat message inside an update.
type Message struct {
	MessageID int64  `json:"message_id"`
	Text      string `json:"text"`
	Chat      Chat   `json:"chat"`
}

// Chat identifies the originating conversation.
type Chat struct {
	ID int64 `json:"id"`
}

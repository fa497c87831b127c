package dto

// Webhook payload shapes as delivered by the Meta platform
// (object "page" -> entries -> messaging events).

// WebhookPayload is the top-level webhook POST body.
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

// WebhookEntry is one page entry carrying messaging events.
type WebhookEntry struct {
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []MessagingEvent `json:"messaging"`
}

// MessagingEvent is one sender->recipient event. Read receipts carry only the
// Read field and are discarded before classification.
type MessagingEvent struct {
	Sender       Participant     `json:"sender"`
	Recipient    Participant     `json:"recipient"`
	Timestamp    int64           `json:"timestamp"`
	Conversation *Conversation   `json:"conversation,omitempty"`
	Message      *InboundMessage `json:"message,omitempty"`
	Read         *ReadReceipt    `json:"read,omitempty"`
}

// Participant identifies one side of the conversation.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Conversation identifies the thread.
type Conversation struct {
	ID string `json:"id"`
}

// InboundMessage is the message body of a messaging event.
type InboundMessage struct {
	MID         string              `json:"mid"`
	Seq         int64               `json:"seq"`
	Text        string              `json:"text,omitempty"`
	Attachments []InboundAttachment `json:"attachments,omitempty"`
	QuickReply  *QuickReply         `json:"quick_reply,omitempty"`
	IsEcho      bool                `json:"is_echo,omitempty"`
}

// InboundAttachment is one attachment with its payload URL.
type InboundAttachment struct {
	Type    string `json:"type"`
	Payload struct {
		URL string `json:"url"`
	} `json:"payload"`
}

// QuickReply is the platform's quick-reply marker.
type QuickReply struct {
	Payload string `json:"payload"`
}

// ReadReceipt marks a message_reads event.
type ReadReceipt struct {
	Watermark int64 `json:"watermark"`
}

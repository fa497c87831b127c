package entity

import "time"

// Attachment is one media item carried by an inbound message.
type Attachment struct {
	Type string // "image", "video", ...
	URL  string
}

// Message is one inbound platform event as recorded. Immutable once stored.
type Message struct {
	ID             string
	SenderID       string
	RecipientID    string
	Timestamp      int64 // platform event timestamp (ms since epoch)
	Text           string
	ConversationID string
	PlatformMsgID  string // the platform's "mid"
	Seq            int64
	Attachments    []Attachment
	QuickReply     string
	IsEcho         bool
	CreatedAt      time.Time
}

// WordCount counts whitespace-separated words in the message text.
func (m *Message) WordCount() int {
	n := 0
	inWord := false
	for _, r := range m.Text {
		switch r {
		case ' ', '\t', '\n', '\r':
			inWord = false
		default:
			if !inWord {
				n++
			}
			inWord = true
		}
	}
	return n
}

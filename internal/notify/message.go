package notify

import "context"

// Channel identifies a delivery mechanism for outbound messages.
type Channel string

// Supported channels.
const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Message is a single outbound notification.
type Message struct {
	Channel   Channel `json:"channel"`
	Recipient string  `json:"recipient"`
	Subject   string  `json:"subject,omitempty"`
	Body      string  `json:"body"`
}

// Sender pushes a message to one channel provider.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

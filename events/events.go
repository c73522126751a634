package events

import (
	"encoding/json"
	"time"
)

// Event defines a type that can yield itself as JSON bytes for the queue.
type Event interface {
	Yield() []byte
	EventAction() string
	IsSuccessful() bool
}

// Notification is the Event published for one row of the outbound notification queue.
type Notification struct {
	ID         int64     `json:"id"`
	ItemType   string    `json:"itemtype"`
	ItemsID    int64     `json:"items_id"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Mode       string    `json:"mode"`
	CreateTime time.Time `json:"create_time"`
	Failed     bool      `json:"failed"`
}

// Yield satisfies the Event interface.
func (n Notification) Yield() []byte {
	b, _ := json.Marshal(n)
	return b
}

// EventAction satisfies the Event interface.
func (n Notification) EventAction() string {
	return "notification.send"
}

// IsSuccessful satisfies the Event interface.
func (n Notification) IsSuccessful() bool {
	return !n.Failed
}

// ItemChange is the Event published for one audit record.
type ItemChange struct {
	Action   string    `json:"action"`
	ItemType string    `json:"itemtype"`
	ItemsID  int64     `json:"items_id"`
	Service  string    `json:"service"`
	Level    int64     `json:"level"`
	Message  string    `json:"message"`
	Date     time.Time `json:"date"`
	Failed   bool      `json:"failed"`
}

// Yield satisfies the Event interface.
func (c ItemChange) Yield() []byte {
	b, _ := json.Marshal(c)
	return b
}

// EventAction satisfies the Event interface.
func (c ItemChange) EventAction() string {
	return c.Action
}

// IsSuccessful satisfies the Event interface.
func (c ItemChange) IsSuccessful() bool {
	return !c.Failed
}

package model

import "time"

// NotificationField represents a titled section within an embed.
type NotificationField struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is a rich card rendered by the downstream chat channel.
type Embed struct {
	Title       string
	Description string
	URL         string
	Color       int
	Timestamp   time.Time
	Footer      string
	ImageURL    string
	Fields      []NotificationField
}

// Notification is a transport-agnostic message for downstream notifiers.
// Either Content, Embeds or both may be set.
type Notification struct {
	Content string
	Embeds  []Embed
}

// IsEmpty reports whether there is nothing to deliver.
func (n Notification) IsEmpty() bool {
	return n.Content == "" && len(n.Embeds) == 0
}

package model

import "encoding/json"

const (
	// ObjectPage is the only webhook object this service relays.
	ObjectPage = "page"
	// FieldFeed marks changes to a page feed.
	FieldFeed = "feed"
)

// PageEvent is the envelope Meta posts to the webhook callback.
type PageEvent struct {
	Object  string      `json:"object"`
	Entries []PageEntry `json:"entry"`
}

// PageEntry groups the changes reported for one page.
type PageEntry struct {
	ID      string       `json:"id"`
	Time    int64        `json:"time"`
	Changes []PageChange `json:"changes"`
}

// PageChange is a single subscribed-field change. Value is decoded lazily because
// its shape depends on Field.
type PageChange struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

// FeedVerb is the action reported for a feed item.
type FeedVerb string

const (
	VerbAdd    FeedVerb = "add"
	VerbEdited FeedVerb = "edited"
	VerbRemove FeedVerb = "remove"
)

// IsRemoval reports whether the verb deletes the item.
func (v FeedVerb) IsRemoval() bool { return v == VerbRemove }

// IsAdd reports whether the verb announces a new item.
func (v FeedVerb) IsAdd() bool { return v == VerbAdd }

// FeedChange is the value of a "feed" change. Unknown verbs are kept verbatim.
type FeedChange struct {
	PostID string   `json:"post_id"`
	Verb   FeedVerb `json:"verb"`
	Item   string   `json:"item"`
}

// ChangeOutcome classifies what happened to one feed change.
type ChangeOutcome string

const (
	OutcomeNotified         ChangeOutcome = "notified"
	OutcomeEnrichmentFailed ChangeOutcome = "enrichment_failed"
	OutcomeDeliveryFailed   ChangeOutcome = "delivery_failed"
	OutcomeRejected         ChangeOutcome = "rejected"
)

// ChangeResult records the handling of one feed change.
type ChangeResult struct {
	PostID  string
	Verb    FeedVerb
	Outcome ChangeOutcome
	Err     error
}

// OK reports whether the change produced a delivered notification.
func (r ChangeResult) OK() bool { return r.Outcome == OutcomeNotified }

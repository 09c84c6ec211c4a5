package model

import "time"

// AttachmentType classifies a post attachment.
type AttachmentType int

const (
	AttachmentOther AttachmentType = iota
	AttachmentAlbum
	AttachmentInlineVideo
)

// ClassifyAttachment maps a Graph attachment type onto AttachmentType.
func ClassifyAttachment(raw string) AttachmentType {
	switch raw {
	case "album":
		return AttachmentAlbum
	case "video_inline":
		return AttachmentInlineVideo
	default:
		return AttachmentOther
	}
}

// Attachment is a media attachment on a page post.
type Attachment struct {
	Type    AttachmentType
	RawType string
	URL     string
	// MediaCount is the number of media items, or 0 when unknown.
	MediaCount int
}

// Post is a page post enriched from the content API.
type Post struct {
	ID           string
	Message      string
	CreatedTime  time.Time
	FullPicture  string
	PermalinkURL string
	Attachments  []Attachment
}

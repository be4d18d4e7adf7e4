package models

import "time"

// AttachmentKind is the media kind of an attachment.
type AttachmentKind string

const (
	KindImage AttachmentKind = "image"
	KindVideo AttachmentKind = "video"
)

func (k AttachmentKind) Valid() bool {
	return k == KindImage || k == KindVideo
}

// Attachment points at a previously uploaded object. It is stored as one
// element of the memories.attachments JSONB array.
type Attachment struct {
	URL  string         `json:"url"`
	Kind AttachmentKind `json:"type"`
}

// Memory is a user-owned record. Attachments are ordered; index 0 is the cover.
type Memory struct {
	ID          string
	UserID      string
	Title       string
	Date        string
	Description string
	Attachments []Attachment
	CreatedAt   time.Time
}

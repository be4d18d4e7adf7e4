// Package models defines client-side data models used by the Memory Lane CLI.
package models

import (
	"path/filepath"
	"strings"
	"time"
)

type AttachmentKind string

const (
	KindImage AttachmentKind = "image"
	KindVideo AttachmentKind = "video"
)

func (k AttachmentKind) Valid() bool {
	return k == KindImage || k == KindVideo
}

// Attachment references an uploaded object by its public URL.
type Attachment struct {
	URL  string
	Kind AttachmentKind
}

// Memory is a user-owned record. Attachments[0] is the cover.
type Memory struct {
	ID          string
	UserID      string
	Title       string
	DateLabel   string
	Description string
	Attachments []Attachment
	CreatedAt   time.Time
}

// Cover returns the first attachment, or nil for a memory without media.
func (m *Memory) Cover() *Attachment {
	if len(m.Attachments) == 0 {
		return nil
	}
	return &m.Attachments[0]
}

// PickedMedia is a local file chosen by the user. It is never persisted.
type PickedMedia struct {
	Path    string
	Name    string
	Kind    AttachmentKind
	Quality float64
}

var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".avi":  "video/x-msvideo",
}

// ContentType derives the upload content type from the kind and the file extension.
func (p PickedMedia) ContentType() string {
	name := p.Name
	if name == "" {
		name = p.Path
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := mimeTypes[ext]; ok && strings.HasPrefix(ct, string(p.Kind)+"/") {
		return ct
	}
	switch p.Kind {
	case KindVideo:
		return "video/mp4"
	default:
		return "image/jpeg"
	}
}

// KindFromExt reports the attachment kind implied by a filename extension.
func KindFromExt(name string) (AttachmentKind, bool) {
	ct, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return "", false
	}
	if strings.HasPrefix(ct, "video/") {
		return KindVideo, true
	}
	return KindImage, true
}

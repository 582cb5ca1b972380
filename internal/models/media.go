package models

import "strings"

// MediaKind discriminates how a media field is rendered.
type MediaKind string

const (
	MediaNone  MediaKind = "none"
	MediaImage MediaKind = "image"
	MediaEmbed MediaKind = "embed"
)

const embedMarker = "<iframe"

// Media is an image URL or a block of trusted embed markup.
type Media struct {
	Kind  MediaKind `json:"kind"`
	Value string    `json:"value,omitempty"`
}

// ParseMedia classifies a raw stored value. Anything containing an iframe tag is
// embed markup, any other non-blank value is an image URL.
func ParseMedia(raw string) Media {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return Media{Kind: MediaNone}
	case strings.Contains(strings.ToLower(trimmed), embedMarker):
		return Media{Kind: MediaEmbed, Value: trimmed}
	default:
		return Media{Kind: MediaImage, Value: trimmed}
	}
}

// ParseMediaPtr is ParseMedia for nullable columns.
func ParseMediaPtr(raw *string) Media {
	if raw == nil {
		return Media{Kind: MediaNone}
	}
	return ParseMedia(*raw)
}

// OrDefault swaps an absent media value for an image at fallback.
func (m Media) OrDefault(fallback string) Media {
	if m.Kind == MediaNone && fallback != "" {
		return Media{Kind: MediaImage, Value: fallback}
	}
	return m
}

func (m Media) IsEmbed() bool { return m.Kind == MediaEmbed }

func (m Media) IsImage() bool { return m.Kind == MediaImage }

package presenter

import "github.com/noah-isme/bcsi-site/internal/models"

// Style is the visual treatment of an announcement card.
type Style struct {
	Tone  string `json:"tone"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

var defaultStyle = Style{Tone: "primary", Icon: "bell", Label: "Announcement"}

var announcementStyles = map[string]Style{
	"important": {Tone: "destructive", Icon: "alert-circle", Label: "Important"},
	"event":     {Tone: "accent", Icon: "calendar", Label: "Event"},
	"academic":  {Tone: "primary", Icon: "bell", Label: "Academic"},
	"holiday":   {Tone: "primary", Icon: "bell", Label: "Holiday"},
	"general":   {Tone: "primary", Icon: "bell", Label: "General"},
}

// StyleFor picks the card style for an announcement type, ignoring case.
func StyleFor(a models.Announcement) Style {
	if s, ok := announcementStyles[a.NormalizedType()]; ok {
		return s
	}
	return defaultStyle
}

var badgeColors = map[string]string{
	"important": "red",
	"event":     "blue",
	"academic":  "green",
	"holiday":   "yellow",
}

// BadgeColor is the admin table colour for an announcement type.
func BadgeColor(a models.Announcement) string {
	if c, ok := badgeColors[a.NormalizedType()]; ok {
		return c
	}
	return "gray"
}

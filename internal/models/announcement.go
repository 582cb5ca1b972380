package models

import (
	"strings"
	"time"
)

// Announcement types used by convention; the column itself is free text.
const (
	AnnouncementTypeGeneral   = "General"
	AnnouncementTypeImportant = "Important"
	AnnouncementTypeEvent     = "Event"
	AnnouncementTypeAcademic  = "Academic"
	AnnouncementTypeHoliday   = "Holiday"
)

// AnnouncementTypes lists the values offered by the admin form.
var AnnouncementTypes = []string{
	AnnouncementTypeGeneral,
	AnnouncementTypeImportant,
	AnnouncementTypeEvent,
	AnnouncementTypeAcademic,
	AnnouncementTypeHoliday,
}

// Announcement represents a row of the announcements table.
type Announcement struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Date      Date      `db:"date" json:"date"`
	Type      string    `db:"type" json:"type"`
	IsActive  *bool     `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Active reports the effective activation of the announcement.
func (a Announcement) Active() bool { return IsActive(a.IsActive) }

// NormalizedType returns the lower-cased, trimmed type used for style lookups.
func (a Announcement) NormalizedType() string {
	return strings.ToLower(strings.TrimSpace(a.Type))
}

// ImportantDate is a free-form calendar entry shown beside announcements.
type ImportantDate struct {
	ID           string `db:"id" json:"id"`
	Event        string `db:"event" json:"event"`
	Date         string `db:"date" json:"date"`
	DisplayOrder *int   `db:"display_order" json:"display_order"`
	IsActive     *bool  `db:"is_active" json:"is_active"`
}

func (d ImportantDate) Active() bool { return IsActive(d.IsActive) }

// IsActive treats a NULL activation flag as active; only an explicit false hides a record.
func IsActive(flag *bool) bool {
	return flag == nil || *flag
}

// Toggled returns the flag value produced by flipping the effective activation.
func Toggled(flag *bool) bool {
	return !IsActive(flag)
}

// BoolPtr is a small helper for optional flags.
func BoolPtr(v bool) *bool { return &v }

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CoreValue is one entry of the about page core values list.
type CoreValue struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CoreValues is stored as a JSONB array.
type CoreValues []CoreValue

// Scan implements sql.Scanner.
func (v *CoreValues) Scan(src interface{}) error {
	var raw []byte
	switch s := src.(type) {
	case nil:
		*v = nil
		return nil
	case []byte:
		raw = s
	case string:
		raw = []byte(s)
	default:
		return fmt.Errorf("cannot scan %T into CoreValues", src)
	}
	if len(raw) == 0 {
		*v = nil
		return nil
	}
	return json.Unmarshal(raw, v)
}

// Value implements driver.Valuer.
func (v CoreValues) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// AboutContent is the singleton row behind the about page.
type AboutContent struct {
	ID           string     `db:"id" json:"id"`
	History      *string    `db:"history" json:"history"`
	Mission      *string    `db:"mission_new" json:"mission_new"`
	Vision       *string    `db:"vision_new" json:"vision_new"`
	CoreValues   CoreValues `db:"core_values" json:"core_values"`
	CampusMapURL *string    `db:"campus_map_url" json:"campus_map_url"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// HomeContent is the singleton row behind the home page hero.
type HomeContent struct {
	ID             string    `db:"id" json:"id"`
	HeroTitle      *string   `db:"hero_title" json:"hero_title"`
	HeroSubtitle   *string   `db:"hero_subtitle" json:"hero_subtitle"`
	HeroImageURL   *string   `db:"hero_image_url" json:"hero_image_url"`
	WhyChooseTitle *string   `db:"why_choose_title" json:"why_choose_title"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

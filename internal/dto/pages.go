package dto

import (
	"github.com/noah-isme/bcsi-site/internal/content"
	"github.com/noah-isme/bcsi-site/internal/models"
	"github.com/noah-isme/bcsi-site/internal/presenter"
)

// PageMeta is embedded by every public page view.
// Degraded is set when at least one read failed and defaults were substituted.
type PageMeta struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Degraded bool   `json:"degraded"`
}

type HomePage struct {
	PageMeta
	HeroTitle      string              `json:"hero_title"`
	HeroSubtitle   string              `json:"hero_subtitle"`
	HeroImage      models.Media        `json:"hero_image"`
	StudentsImage  models.Media        `json:"students_image"`
	Welcome        []string            `json:"welcome"`
	WhyChooseTitle string              `json:"why_choose_title"`
	Highlights     []content.Highlight `json:"highlights"`
}

// PersonCard is a person as rendered on a card, with the photo fallback applied.
type PersonCard struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Position    string       `json:"position"`
	Department  string       `json:"department,omitempty"`
	Description string       `json:"description,omitempty"`
	Years       string       `json:"years,omitempty"`
	Photo       models.Media `json:"photo"`
}

// HistoricalSection is a group of former leaders under one heading.
type HistoricalSection struct {
	Category string           `json:"category"`
	Heading  string           `json:"heading"`
	Layout   presenter.Layout `json:"layout"`
	People   []PersonCard     `json:"people"`
}

type AboutPage struct {
	PageMeta
	History           string              `json:"history"`
	Vision            string              `json:"vision"`
	MissionIntro      string              `json:"mission_intro"`
	MissionPoints     []string            `json:"mission_points"`
	CoreValues        []models.CoreValue  `json:"core_values"`
	CampusMap         models.Media        `json:"campus_map"`
	CampusDescription string              `json:"campus_description"`
	Directors         *HistoricalSection  `json:"directors,omitempty"`
	Principals        []HistoricalSection `json:"principals"`
	OtherLeaders      []HistoricalSection `json:"other_leaders,omitempty"`
}

type ProgramsPage struct {
	PageMeta
	JHSIntro      string              `json:"jhs_intro"`
	JHSHighlights []content.Highlight `json:"jhs_highlights"`
	SHSIntro      string              `json:"shs_intro"`
	SHSHighlights []content.Highlight `json:"shs_highlights"`
	Tracks        []content.Track     `json:"tracks"`
	Timeline      []content.Milestone `json:"timeline"`
	Closing       string              `json:"closing"`
}

type ScholarshipsPage struct {
	PageMeta
	Intro       string                `json:"intro"`
	Programs    []content.Scholarship `json:"programs"`
	Steps       []content.Highlight   `json:"steps"`
	ContactNote string                `json:"contact_note"`
}

type ContactPage struct {
	PageMeta
	Contact content.ContactInfo `json:"contact"`
}

type PersonnelPage struct {
	PageMeta
	Director       *PersonCard                   `json:"director,omitempty"`
	Administrators []PersonCard                  `json:"administrators"`
	Departments    []presenter.Group[PersonCard] `json:"departments"`
	SupportStaff   []PersonCard                  `json:"support_staff"`
	Empty          bool                          `json:"empty"`
	EmptyMessage   string                        `json:"empty_message,omitempty"`
}

// AnnouncementCard is an announcement with its type-derived style.
type AnnouncementCard struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Date      models.Date     `json:"date"`
	DateLabel string          `json:"date_label"`
	Type      string          `json:"type"`
	Style     presenter.Style `json:"style"`
}

type ImportantDateItem struct {
	Event string `json:"event"`
	Date  string `json:"date"`
}

type AnnouncementsPage struct {
	PageMeta
	Announcements  []AnnouncementCard  `json:"announcements"`
	ImportantDates []ImportantDateItem `json:"important_dates"`
}

type OrganizationCard struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	Description     string `json:"description"`
	TeacherInCharge string `json:"teacher_in_charge,omitempty"`
	MemberCount     int    `json:"member_count"`
}

type OrganizationsPage struct {
	PageMeta
	Groups []presenter.Group[OrganizationCard] `json:"groups"`
}

type MemberCard struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Position string       `json:"position,omitempty"`
	Photo    models.Media `json:"photo"`
}

type OrganizationDetailPage struct {
	PageMeta
	Organization OrganizationCard              `json:"organization"`
	Groups       []presenter.Group[MemberCard] `json:"groups"`
}

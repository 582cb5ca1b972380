package dto

import "github.com/noah-isme/bcsi-site/internal/models"

// AnnouncementRequest is the admin payload for creating or editing an announcement.
type AnnouncementRequest struct {
	Title    string `json:"title" form:"title"`
	Content  string `json:"content" form:"content"`
	Date     string `json:"date" form:"date"`
	Type     string `json:"type" form:"type"`
	IsActive *bool  `json:"is_active" form:"-"`
}

type ImportantDateRequest struct {
	Event        string `json:"event" validate:"required,max=255"`
	Date         string `json:"date" validate:"required,max=100"`
	DisplayOrder *int   `json:"display_order" validate:"omitempty,min=0"`
	IsActive     *bool  `json:"is_active"`
}

type PersonnelRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Position     string  `json:"position" validate:"required,max=255"`
	Department   *string `json:"department" validate:"omitempty,max=255"`
	Description  *string `json:"description"`
	PhotoURL     *string `json:"photo_url" validate:"omitempty,url"`
	DisplayOrder *int    `json:"display_order" validate:"omitempty,min=0"`
	IsActive     *bool   `json:"is_active"`
}

type HistoricalPersonnelRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Position     string  `json:"position" validate:"required,max=255"`
	Years        *string `json:"years" validate:"omitempty,max=100"`
	PhotoURL     *string `json:"photo_url" validate:"omitempty,url"`
	Category     string  `json:"category" validate:"required,oneof=director shs_principal jhs_principal"`
	DisplayOrder *int    `json:"display_order" validate:"omitempty,min=0"`
	IsActive     *bool   `json:"is_active"`
}

type OrganizationRequest struct {
	Name            string  `json:"name" validate:"required,max=255"`
	Type            string  `json:"type" validate:"required,max=100"`
	Description     *string `json:"description"`
	TeacherInCharge *string `json:"teacher_in_charge" validate:"omitempty,max=255"`
}

type OrganizationMemberRequest struct {
	Name           string  `json:"name" validate:"required,max=255"`
	Position       *string `json:"position" validate:"omitempty,max=255"`
	PhotoURL       *string `json:"photo_url" validate:"omitempty,url"`
	DisplayOrder   *int    `json:"display_order" validate:"omitempty,min=0"`
	MemberCategory *string `json:"member_category" validate:"omitempty,max=100"`
}

type HomeContentRequest struct {
	HeroTitle      *string `json:"hero_title" validate:"omitempty,max=255"`
	HeroSubtitle   *string `json:"hero_subtitle"`
	HeroImageURL   *string `json:"hero_image_url" validate:"omitempty,url"`
	WhyChooseTitle *string `json:"why_choose_title" validate:"omitempty,max=255"`
}

type AboutContentRequest struct {
	History      *string            `json:"history"`
	Mission      *string            `json:"mission_new"`
	Vision       *string            `json:"vision_new"`
	CoreValues   []models.CoreValue `json:"core_values" validate:"omitempty,dive"`
	CampusMapURL *string            `json:"campus_map_url"`
}

// ContactRequest is the public contact form.
type ContactRequest struct {
	FullName string `json:"full_name" form:"full_name" validate:"required,max=255"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Message  string `json:"message" form:"message" validate:"required,max=5000"`
}

// ToggleResult reports the activation flag written by a toggle.
type ToggleResult struct {
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}

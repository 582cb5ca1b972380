package models

// Personnel is a current staff member listed on the personnel page.
type Personnel struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Position     string  `db:"position" json:"position"`
	Department   *string `db:"department" json:"department"`
	Description  *string `db:"description" json:"description"`
	PhotoURL     *string `db:"photo_url" json:"photo_url"`
	DisplayOrder *int    `db:"display_order" json:"display_order"`
	IsActive     *bool   `db:"is_active" json:"is_active"`
}

func (p Personnel) Active() bool { return IsActive(p.IsActive) }

// Historical personnel categories.
const (
	HistoricalCategoryDirector     = "director"
	HistoricalCategorySHSPrincipal = "shs_principal"
	HistoricalCategoryJHSPrincipal = "jhs_principal"
)

// HistoricalPersonnel is a former director or principal shown on the about page.
type HistoricalPersonnel struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Position     string  `db:"position" json:"position"`
	Years        *string `db:"years" json:"years"`
	PhotoURL     *string `db:"photo_url" json:"photo_url"`
	Category     string  `db:"category" json:"category"`
	DisplayOrder *int    `db:"display_order" json:"display_order"`
	IsActive     *bool   `db:"is_active" json:"is_active"`
}

func (h HistoricalPersonnel) Active() bool { return IsActive(h.IsActive) }

// Organization is a club, council or association.
type Organization struct {
	ID              string  `db:"id" json:"id"`
	Name            string  `db:"name" json:"name"`
	Type            string  `db:"type" json:"type"`
	Description     *string `db:"description" json:"description"`
	TeacherInCharge *string `db:"teacher_in_charge" json:"teacher_in_charge"`
}

// OrganizationMember belongs to exactly one organization.
type OrganizationMember struct {
	ID             string  `db:"id" json:"id"`
	OrganizationID string  `db:"organization_id" json:"organization_id"`
	Name           string  `db:"name" json:"name"`
	Position       *string `db:"position" json:"position"`
	PhotoURL       *string `db:"photo_url" json:"photo_url"`
	DisplayOrder   *int    `db:"display_order" json:"display_order"`
	MemberCategory *string `db:"member_category" json:"member_category"`
}

// StringValue dereferences an optional column.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns nil for blank input.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

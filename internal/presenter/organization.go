package presenter

import (
	"strings"

	"github.com/noah-isme/bcsi-site/internal/models"
)

const (
	CategoryMembers = "Members"
	TypeOther       = "Other"
)

// MemberCategoryOrder ranks the roster sections of an organization page.
var MemberCategoryOrder = []string{
	"Officers",
	"Grade Level Representatives",
	"Department Heads",
	"Faculty",
	"Staff",
	"Student Leaders",
	CategoryMembers,
}

// ClassifyMember uses the stored category verbatim, "Members" when blank.
func ClassifyMember(m models.OrganizationMember) string {
	if m.MemberCategory == nil || strings.TrimSpace(*m.MemberCategory) == "" {
		return CategoryMembers
	}
	return *m.MemberCategory
}

// MemberLayout renders the catch-all bucket as a compact grid and everything else as cards.
func MemberLayout(category string) Layout {
	if category == CategoryMembers {
		return LayoutCompact
	}
	return LayoutCards
}

// PresentMembers groups a roster already ordered by display_order.
func PresentMembers(members []models.OrganizationMember) []Group[models.OrganizationMember] {
	groups := GroupBy(members, ClassifyMember, MemberCategoryOrder)
	for i := range groups {
		groups[i].Layout = MemberLayout(groups[i].Name)
	}
	return groups
}

// ClassifyOrganization buckets organizations by their type.
func ClassifyOrganization(o models.Organization) string {
	if t := strings.TrimSpace(o.Type); t != "" {
		return t
	}
	return TypeOther
}

// PresentOrganizations groups the directory by type in first-seen order.
func PresentOrganizations(orgs []models.Organization) []Group[models.Organization] {
	groups := GroupBy(orgs, ClassifyOrganization, nil)
	for i := range groups {
		groups[i].Layout = LayoutCards
	}
	return groups
}

package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bcsi-site/internal/models"
)

func member(id string, category *string) models.OrganizationMember {
	return models.OrganizationMember{ID: id, Name: id, MemberCategory: category}
}

func TestPresentMembersOfficersAndUnlistedCategory(t *testing.T) {
	members := []models.OrganizationMember{
		member("m1", dept("Officers")),
		member("m2", dept("Officers")),
		member("m3", dept("Adviser")),
	}

	groups := PresentMembers(members)

	require.Len(t, groups, 2)
	assert.Equal(t, "Officers", groups[0].Name)
	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, LayoutCards, groups[0].Layout)
	assert.Equal(t, "Adviser", groups[1].Name)
	assert.Len(t, groups[1].Items, 1)
}

func TestPresentMembersDefaultsToCompactMembers(t *testing.T) {
	members := []models.OrganizationMember{
		member("a", nil),
		member("b", dept("")),
		member("c", dept("Faculty")),
		member("d", dept("Officers")),
	}

	groups := PresentMembers(members)

	assert.Equal(t, []string{"Officers", "Faculty", CategoryMembers}, names(groups))
	assert.Equal(t, LayoutCompact, groups[2].Layout)
	assert.Len(t, groups[2].Items, 2)
}

func TestPresentOrganizationsByType(t *testing.T) {
	orgs := []models.Organization{
		{ID: "1", Type: "Club"},
		{ID: "2", Type: "Council"},
		{ID: "3", Type: ""},
		{ID: "4", Type: "Club"},
	}
	groups := PresentOrganizations(orgs)
	assert.Equal(t, []string{"Club", "Council", TypeOther}, names(groups))
	assert.Equal(t, 4, Total(groups))
}

func TestPresentHistorical(t *testing.T) {
	list := []models.HistoricalPersonnel{
		{ID: "j", Category: "jhs_principal"},
		{ID: "x", Category: "guidance_head"},
		{ID: "d", Category: "director"},
		{ID: "s", Category: "SHS_Principal"},
	}
	groups := PresentHistorical(list)
	assert.Equal(t, []string{"director", "shs_principal", "jhs_principal", "guidance_head"}, names(groups))
	assert.Equal(t, LayoutFeatured, groups[0].Layout)
	assert.Equal(t, "Former School Directors", HistoricalHeading(groups[0].Name))
	assert.Equal(t, "Guidance Head", HistoricalHeading("guidance_head"))
	assert.True(t, IsPrincipalCategory("jhs_principal"))
	assert.False(t, IsPrincipalCategory("director"))
}

func TestAnnouncementStyles(t *testing.T) {
	assert.Equal(t, Style{Tone: "destructive", Icon: "alert-circle", Label: "Important"}, StyleFor(models.Announcement{Type: "Important"}))
	assert.Equal(t, Style{Tone: "accent", Icon: "calendar", Label: "Event"}, StyleFor(models.Announcement{Type: "event"}))
	assert.Equal(t, "Holiday", StyleFor(models.Announcement{Type: "HOLIDAY"}).Label)
	assert.Equal(t, defaultStyle, StyleFor(models.Announcement{Type: "Sports"}))
	assert.Equal(t, defaultStyle, StyleFor(models.Announcement{}))

	assert.Equal(t, "red", BadgeColor(models.Announcement{Type: "Important"}))
	assert.Equal(t, "yellow", BadgeColor(models.Announcement{Type: "Holiday"}))
	assert.Equal(t, "gray", BadgeColor(models.Announcement{Type: "General"}))
}

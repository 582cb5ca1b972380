package presenter

import (
	"strings"

	"github.com/noah-isme/bcsi-site/internal/models"
)

const (
	GroupAdministration = "Administration"
	GroupTeaching       = "Teaching Faculty"
	GroupSupportStaff   = "Support Staff"
	DepartmentOther     = "Other"
)

// PersonnelOrder is the top-level section order of the personnel page.
var PersonnelOrder = []string{GroupAdministration, GroupTeaching, GroupSupportStaff}

// ClassifyPersonnel applies the rules in precedence order: an Administration department
// or a director/principal title wins, then the Support Staff department, otherwise teaching.
func ClassifyPersonnel(p models.Personnel) string {
	dept := strings.TrimSpace(models.StringValue(p.Department))
	position := strings.ToLower(p.Position)
	switch {
	case dept == GroupAdministration,
		strings.Contains(position, "director"),
		strings.Contains(position, "principal"):
		return GroupAdministration
	case dept == GroupSupportStaff:
		return GroupSupportStaff
	default:
		return GroupTeaching
	}
}

// TeachingDepartment names the teaching sub-section of p.
func TeachingDepartment(p models.Personnel) string {
	if dept := strings.TrimSpace(models.StringValue(p.Department)); dept != "" {
		return dept
	}
	return DepartmentOther
}

func isDirector(p models.Personnel) bool {
	return strings.Contains(strings.ToLower(p.Position), "director")
}

// PersonnelSections is the personnel page broken into its rendered parts.
type PersonnelSections struct {
	Director       *models.Personnel
	Administrators []models.Personnel
	Departments    []Group[models.Personnel]
	SupportStaff   []models.Personnel
}

// Empty reports whether no personnel remain to show.
func (s PersonnelSections) Empty() bool {
	return s.Director == nil && len(s.Administrators) == 0 && len(s.Departments) == 0 && len(s.SupportStaff) == 0
}

// Count is the number of people across all sections.
func (s PersonnelSections) Count() int {
	n := len(s.Administrators) + Total(s.Departments) + len(s.SupportStaff)
	if s.Director != nil {
		n++
	}
	return n
}

// PresentPersonnel groups an ordered personnel list. The first Administration record
// with "director" in its position is featured; the rest of Administration are peers.
func PresentPersonnel(list []models.Personnel) PersonnelSections {
	var sections PersonnelSections
	for _, g := range GroupBy(list, ClassifyPersonnel, PersonnelOrder) {
		switch g.Name {
		case GroupAdministration:
			for i := range g.Items {
				if sections.Director == nil && isDirector(g.Items[i]) {
					director := g.Items[i]
					sections.Director = &director
					continue
				}
				sections.Administrators = append(sections.Administrators, g.Items[i])
			}
		case GroupTeaching:
			sections.Departments = GroupBy(g.Items, TeachingDepartment, nil)
			for i := range sections.Departments {
				sections.Departments[i].Layout = LayoutCards
			}
		case GroupSupportStaff:
			sections.SupportStaff = g.Items
		}
	}
	return sections
}

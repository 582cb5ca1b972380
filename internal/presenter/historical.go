package presenter

import (
	"strings"

	"github.com/noah-isme/bcsi-site/internal/models"
)

// HistoricalOrder ranks the former-leaders sections of the about page.
var HistoricalOrder = []string{
	models.HistoricalCategoryDirector,
	models.HistoricalCategorySHSPrincipal,
	models.HistoricalCategoryJHSPrincipal,
}

var historicalHeadings = map[string]string{
	models.HistoricalCategoryDirector:     "Former School Directors",
	models.HistoricalCategorySHSPrincipal: "Senior High School",
	models.HistoricalCategoryJHSPrincipal: "Junior High School",
}

func ClassifyHistorical(h models.HistoricalPersonnel) string {
	return strings.ToLower(strings.TrimSpace(h.Category))
}

// HistoricalHeading returns the section title for a category.
func HistoricalHeading(category string) string {
	if heading, ok := historicalHeadings[category]; ok {
		return heading
	}
	words := strings.Fields(strings.ReplaceAll(category, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return "Former Leaders"
	}
	return strings.Join(words, " ")
}

// IsPrincipalCategory reports whether the section sits under "Former Principals".
func IsPrincipalCategory(category string) bool {
	return category == models.HistoricalCategorySHSPrincipal || category == models.HistoricalCategoryJHSPrincipal
}

// PresentHistorical groups former leaders by category; directors are featured cards.
func PresentHistorical(list []models.HistoricalPersonnel) []Group[models.HistoricalPersonnel] {
	groups := GroupBy(list, ClassifyHistorical, HistoricalOrder)
	for i := range groups {
		if groups[i].Name == models.HistoricalCategoryDirector {
			groups[i].Layout = LayoutFeatured
		} else {
			groups[i].Layout = LayoutCards
		}
	}
	return groups
}

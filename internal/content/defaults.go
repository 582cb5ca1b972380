// Package content holds the compiled-in text of the public site: fallbacks for the
// editable singleton rows and the pages that are not backed by the database.
package content

import "github.com/noah-isme/bcsi-site/internal/models"

// Home page fallbacks.
const (
	DefaultHeroTitle      = "Welcome to Binmaley Catholic School"
	DefaultHeroSubtitle   = "Nurturing minds, hearts, and souls through excellence in Catholic education."
	DefaultWhyChooseTitle = "Why Choose BCSI?"
)

// About page fallbacks.
const (
	DefaultHistory = "Binmaley Catholic School, Inc. was founded with a vision to provide quality Catholic " +
		"education to the youth of Binmaley and surrounding communities. Since our establishment, " +
		"we have remained committed to our founding principles of academic excellence, moral " +
		"integrity, and spiritual growth."
	DefaultVision = "In communio, the Archdiocese of Lingayen – Dagupan Catholic Schools form Christ-centered " +
		"stewards through holistic education and formation."
	DefaultMissionIntro = "To achieve this Vision, ALDCS is committed to the following mission:"
	CampusMapPlaceholder = "Campus map coming soon"
	CampusDescription    = "Our campus features modern classrooms, a well-equipped library, science laboratories, " +
		"computer rooms, chapel, sports facilities, and spacious grounds for student activities."
)

// MissionPoints always follow the mission introduction.
var MissionPoints = []string{
	"To establish among member schools a Catholic identity centered on Jesus Christ, and aligned with the teachings of the Church; (Authenticity)",
	"To ensure a dynamic school operation through efficient governance; (Leadership)",
	"To implement a curriculum enriched with Gospel values through effective instruction and witnessing; (Developmental Learning)",
	"To build a harmonious community in the spirit of synodality with respect to diversity; (Community)",
	"To promote institutional advancement by establishing partnerships and linkages. (Sustainability)",
}

// DefaultCoreValues is shown when the about row carries no core values.
var DefaultCoreValues = models.CoreValues{
	{
		Name: "Solidarity",
		Description: "As part of the 16 Catholic Schools of the Archdiocese that are unique in various and varied ways, " +
			"BCSI commits to ONE ALDCS, fostering Unity in Diversity! The school acknowledges individual differences, " +
			"and celebrates “Communio” in forming Christian stewards through Holistic Catholic Education and Formation.",
	},
	{
		Name: "Discipleship",
		Description: "As a member school of ALDCS, BCSI nurtures the spirituality of stewardship, that is, to be Christian " +
			"Catholic disciples of the earth and of one another. We believe that we are called by God to be his " +
			"collaborators in the work of creation, salvation, and sanctification. As Christian stewards, we receive " +
			"God’s graces gratefully and cultivate them. As brothers and sisters under the Fatherhood of God, we share " +
			"our time, talents, and treasures for His greater glory. As followers of Christ, we make others see Jesus " +
			"in our lives and make others feel His selfless love for all through us, ushering in the kingdom of God.",
	},
	{
		Name: "Character",
		Description: "In forming Christian Stewards, ALDCS hones young men and women to be living witnesses of the Word " +
			"made flesh with the integration of the Gospel values in faith and life. We join hands in our noble task of " +
			"producing alter “Christus” as reflected in our vision – mission statement. In addition, we provide quality " +
			"education in the pursuit of academic excellence among our Learners in order to produce morally upright " +
			"thinking, feeling, praying, and doing members of the church and society.",
	},
}

// Empty-state and fallback messages.
const (
	NoDescription        = "No description available."
	NoPersonnel          = "Personnel information coming soon."
	NoMembers            = "No members listed yet."
	NoAnnouncements      = "No Announcements Yet"
	NoAnnouncementsHint  = "Check back later for updates and news."
	NoImportantDates     = "No important dates at this time."
	NoOrganizations      = "Organizations will be listed soon."
	OrganizationNotFound = "Organization Not Found"
)

// Or returns the trimmed value of s, or fallback when s is nil or blank.
func Or(s *string, fallback string) string {
	if v := trimmed(s); v != "" {
		return v
	}
	return fallback
}

package content

import "strings"

// Highlight is a titled blurb rendered as a card.
type Highlight struct {
	Icon        string `json:"icon,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Track is a senior high school track.
type Track struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Milestone is one step of the curriculum rollout.
type Milestone struct {
	Year        string `json:"year"`
	Description string `json:"description"`
}

// Scholarship describes a financial assistance programme.
type Scholarship struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Coverage    string `json:"coverage"`
}

// ContactInfo is shown in the footer and on the contact page.
type ContactInfo struct {
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	FacebookURL string `json:"facebook_url"`
	OfficeHours string `json:"office_hours"`
}

// NavLink is an entry of the site navigation.
type NavLink struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

var Navigation = []NavLink{
	{Name: "Home", Path: "/"},
	{Name: "About", Path: "/about"},
	{Name: "Programs", Path: "/programs"},
	{Name: "Scholarships", Path: "/scholarships"},
	{Name: "Personnel", Path: "/personnel"},
	{Name: "Organizations", Path: "/organizations"},
	{Name: "Announcements", Path: "/announcements"},
	{Name: "Contact", Path: "/contact"},
}

var HomeHighlights = []Highlight{
	{Icon: "graduation-cap", Title: "Academic Excellence", Description: "Comprehensive Junior and Senior High School programs with proven track record."},
	{Icon: "heart", Title: "Catholic Values", Description: "Faith-centered education that nurtures spiritual growth and moral development."},
	{Icon: "users", Title: "Active Community", Description: "Vibrant student organizations and extracurricular activities for holistic development."},
	{Icon: "book-open", Title: "Scholarship Programs", Description: "Financial assistance opportunities to make quality education accessible to all."},
}

var HomeWelcome = []string{
	"Binmaley Catholic School, Inc. (BCSI) is a leading Catholic educational institution committed to providing " +
		"quality education grounded in Christian values. Our mission is to develop well-rounded individuals who excel " +
		"academically, spiritually, and socially.",
	"With a rich history of academic excellence and a dedicated community of educators, we prepare our students " +
		"for success in higher education and life beyond the classroom.",
}

// Programs page.
const (
	JHSIntro = "The Department of Education (DepEd) has updated the Junior High School curriculum with " +
		"streamlined subjects and enhanced focus on essential competencies."
	SHSIntro = "The Department of Education (DepEd) has updated the Senior High School curriculum to better " +
		"prepare students for college, careers, and life skills."
	ProgramsClosing = "The strengthened curriculum ensures students are better prepared, more flexible, and future-ready."
)

var JHSHighlights = []Highlight{
	{Icon: "book-open", Title: "Simplified Core Subjects", Description: "Streamlined subjects focusing on essential competencies: English, Filipino, Math, Science, and Araling Panlipunan."},
	{Icon: "lightbulb", Title: "Integrated Learning", Description: "Connected learning experiences across subjects with emphasis on 21st-century skills."},
	{Icon: "users", Title: "Values Formation", Description: "Strong focus on character development through Edukasyon sa Pagpapakatao (EsP) and community engagement."},
	{Icon: "globe", Title: "Exploratory Subjects", Description: "Technology and Livelihood Education (TLE) and MAPEH to discover interests and talents."},
}

var SHSHighlights = []Highlight{
	{Icon: "book-open", Title: "Simplified Core Subjects", Description: "Only 5 main subjects for the full year, focusing on communication, math, science, life skills, and Philippine history."},
	{Icon: "graduation-cap", Title: "Flexible Tracks & Electives", Description: "Two main tracks—Academic and Technical-Professional—with electives students can choose across clusters."},
	{Icon: "briefcase", Title: "Enhanced Work Immersion", Description: "Expanded real-world training opportunities, starting as early as Grade 11."},
	{Icon: "check-circle", Title: "Less Congested, More Relevant", Description: "Fewer subjects, more time for mastery, and skills that align with the workforce and higher education."},
}

var SHSTracks = []Track{
	{Name: "Academic Track", Description: "For students planning to pursue higher education. Includes strands like STEM, ABM, HUMSS, and GAS with specialized subjects preparing students for college."},
	{Name: "Technical-Professional Track", Description: "For students who want to develop job-ready skills. Includes strands in Arts & Design, Sports, and Technical-Vocational-Livelihood (TVL)."},
}

var RolloutTimeline = []Milestone{
	{Year: "SY 2025–2026", Description: "Pilot in selected schools"},
	{Year: "SY 2026–2028", Description: "Gradual nationwide rollout"},
}

// Scholarships page.
const ScholarshipsIntro = "At BCSI, we believe that quality Catholic education should be accessible to all deserving " +
	"students. We offer various scholarship programs and financial assistance options to help " +
	"students achieve their academic dreams."

var Scholarships = []Scholarship{
	{Title: "JHS – Government Funded Education Service Contracting", Description: "Government-funded program for Junior High School students.", Coverage: "₱9,000.00"},
	{Title: "SHS – Government Funded Voucher Program", Description: "Government-funded voucher program for Senior High School students.", Coverage: "₱17,500.00 (from public schools) / ₱14,000.00 (from private schools)"},
	{Title: "Fr. Benecke's Scholarship Foundation", Description: "Alumni Funded Scholarship Grant (financial assistance varies)", Coverage: "Financial assistance varies based on need"},
}

// ApplicationSteps are the numbered "How to Apply" instructions.
var ApplicationSteps = []Highlight{
	{Title: "Complete the Application Form", Description: "Fill out the Scholarship Application form from the Registrar’s Office."},
	{Title: "Gather Requirements", Description: "Prepare all necessary documents including report cards, certificates, and proof of financial need (if applicable)."},
	{Title: "Submit Documents", Description: "Submit your complete application to the Scholarship Committee before the deadline."},
	{Title: "Wait for Evaluation", Description: "Applications will be reviewed and qualified applicants will be notified."},
}

const ScholarshipsContactNote = "For more information, please contact our Registrar's Office or visit during office hours."

var Contact = ContactInfo{
	Address:     "Barangay Poblacion, Binmaley, Pangasinan, Philippines",
	Phone:       "(075) 540-0145",
	Email:       "binmaleycs@yahoo.com",
	FacebookURL: "https://www.facebook.com/",
	OfficeHours: "Monday to Friday, 7:30 AM – 4:30 PM",
}

const Tagline = "Excellence in Catholic Education. Nurturing minds, hearts, and souls since our founding."

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

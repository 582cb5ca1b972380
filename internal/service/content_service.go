package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/bcsi-site/internal/content"
	"github.com/noah-isme/bcsi-site/internal/dto"
	"github.com/noah-isme/bcsi-site/internal/models"
	"github.com/noah-isme/bcsi-site/internal/presenter"
	"github.com/noah-isme/bcsi-site/pkg/config"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
	"github.com/noah-isme/bcsi-site/pkg/middleware/requestid"
)

type announcementReader interface {
	ListActive(ctx context.Context) ([]models.Announcement, error)
}

type importantDateReader interface {
	ListActive(ctx context.Context) ([]models.ImportantDate, error)
}

type personnelReader interface {
	ListActive(ctx context.Context) ([]models.Personnel, error)
}

type historicalReader interface {
	ListActive(ctx context.Context) ([]models.HistoricalPersonnel, error)
}

type organizationReader interface {
	List(ctx context.Context) ([]models.Organization, error)
	GetByID(ctx context.Context, id string) (*models.Organization, error)
	ListMembers(ctx context.Context, orgID string) ([]models.OrganizationMember, error)
	CountMembers(ctx context.Context, orgIDs []string) (map[string]int, error)
}

type pageContentReader interface {
	GetAbout(ctx context.Context) (*models.AboutContent, error)
	GetHome(ctx context.Context) (*models.HomeContent, error)
}

// ContentReaders groups the read side of every public table.
type ContentReaders struct {
	Announcements  announcementReader
	ImportantDates importantDateReader
	Personnel      personnelReader
	Historical     historicalReader
	Organizations  organizationReader
	Pages          pageContentReader
}

// ContentService builds the view of each public page. Reads never fail the page:
// an error is logged, counted and replaced by an empty list or compiled-in default,
// and the view is flagged as degraded.
type ContentService struct {
	readers ContentReaders
	site    config.SiteConfig
	metrics *MetricsService
	logger  *zap.Logger
}

// NewContentService constructs the service.
func NewContentService(readers ContentReaders, site config.SiteConfig, metrics *MetricsService, logger *zap.Logger) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{readers: readers, site: site, metrics: metrics, logger: logger}
}

// fetch runs one read and reports whether it failed.
func fetch[T any](ctx context.Context, s *ContentService, source string, read func(context.Context) (T, error)) (T, bool) {
	start := time.Now()
	value, err := read(ctx)
	s.metrics.ObserveFetch(source, time.Since(start), err)
	if err != nil {
		s.logger.Warn("content read failed, using defaults",
			zap.String("source", source),
			zap.String("request_id", requestid.FromContext(ctx)),
			zap.Error(err),
		)
		var zero T
		return zero, true
	}
	return value, false
}

func (s *ContentService) meta(title, subtitle string, degraded bool) dto.PageMeta {
	if degraded {
		s.metrics.MarkDegraded()
	}
	return dto.PageMeta{Title: title, Subtitle: subtitle, Degraded: degraded}
}

// Home builds the landing page. Each hero field falls back independently.
func (s *ContentService) Home(ctx context.Context) dto.HomePage {
	home, failed := fetch(ctx, s, "home_content", s.readers.Pages.GetHome)
	if home == nil {
		home = &models.HomeContent{}
	}
	return dto.HomePage{
		PageMeta:       s.meta("Home", "", failed),
		HeroTitle:      content.Or(home.HeroTitle, content.DefaultHeroTitle),
		HeroSubtitle:   content.Or(home.HeroSubtitle, content.DefaultHeroSubtitle),
		HeroImage:      models.ParseMedia(content.Or(home.HeroImageURL, s.site.HeroImage)),
		StudentsImage:  models.ParseMedia(s.site.StudentsImage),
		Welcome:        content.HomeWelcome,
		WhyChooseTitle: content.Or(home.WhyChooseTitle, content.DefaultWhyChooseTitle),
		Highlights:     content.HomeHighlights,
	}
}

// About builds the about page from the about row and the former leaders list, read concurrently.
func (s *ContentService) About(ctx context.Context) dto.AboutPage {
	var (
		about                   *models.AboutContent
		leaders                 []models.HistoricalPersonnel
		aboutFailed, listFailed bool
	)
	var g errgroup.Group
	g.Go(func() error {
		about, aboutFailed = fetch(ctx, s, "about_content", s.readers.Pages.GetAbout)
		return nil
	})
	g.Go(func() error {
		leaders, listFailed = fetch(ctx, s, "historical_personnel", s.readers.Historical.ListActive)
		return nil
	})
	_ = g.Wait()

	if about == nil {
		about = &models.AboutContent{}
	}
	coreValues := []models.CoreValue(about.CoreValues)
	if len(coreValues) == 0 {
		coreValues = content.DefaultCoreValues
	}

	page := dto.AboutPage{
		PageMeta:          s.meta("About BCSI", "Our History, Mission, and Vision", aboutFailed || listFailed),
		History:           content.Or(about.History, content.DefaultHistory),
		Vision:            content.Or(about.Vision, content.DefaultVision),
		MissionIntro:      content.Or(about.Mission, content.DefaultMissionIntro),
		MissionPoints:     content.MissionPoints,
		CoreValues:        coreValues,
		CampusMap:         models.ParseMediaPtr(about.CampusMapURL),
		CampusDescription: content.CampusDescription,
		Principals:        []dto.HistoricalSection{},
	}

	for _, group := range presenter.PresentHistorical(presenter.FilterActive(leaders, models.HistoricalPersonnel.Active)) {
		section := dto.HistoricalSection{
			Category: group.Name,
			Heading:  presenter.HistoricalHeading(group.Name),
			Layout:   group.Layout,
			People:   make([]dto.PersonCard, 0, len(group.Items)),
		}
		for _, h := range group.Items {
			section.People = append(section.People, s.historicalCard(h))
		}
		switch {
		case group.Name == models.HistoricalCategoryDirector:
			directors := section
			page.Directors = &directors
		case presenter.IsPrincipalCategory(group.Name):
			page.Principals = append(page.Principals, section)
		default:
			page.OtherLeaders = append(page.OtherLeaders, section)
		}
	}
	return page
}

func (s *ContentService) Programs() dto.ProgramsPage {
	return dto.ProgramsPage{
		PageMeta:      dto.PageMeta{Title: "Academic Programs", Subtitle: "Junior High School and Senior High School Programs"},
		JHSIntro:      content.JHSIntro,
		JHSHighlights: content.JHSHighlights,
		SHSIntro:      content.SHSIntro,
		SHSHighlights: content.SHSHighlights,
		Tracks:        content.SHSTracks,
		Timeline:      content.RolloutTimeline,
		Closing:       content.ProgramsClosing,
	}
}

func (s *ContentService) Scholarships() dto.ScholarshipsPage {
	return dto.ScholarshipsPage{
		PageMeta:    dto.PageMeta{Title: "Scholarship Opportunities", Subtitle: "Financial Assistance for Deserving Students"},
		Intro:       content.ScholarshipsIntro,
		Programs:    content.Scholarships,
		Steps:       content.ApplicationSteps,
		ContactNote: content.ScholarshipsContactNote,
	}
}

func (s *ContentService) Contact() dto.ContactPage {
	return dto.ContactPage{
		PageMeta: dto.PageMeta{Title: "Contact Us", Subtitle: "We'd love to hear from you"},
		Contact:  content.Contact,
	}
}

// Personnel builds the staff directory grouped into administration, departments and support staff.
func (s *ContentService) Personnel(ctx context.Context) dto.PersonnelPage {
	list, failed := fetch(ctx, s, "personnel", s.readers.Personnel.ListActive)
	sections := presenter.PresentPersonnel(presenter.FilterActive(list, models.Personnel.Active))

	page := dto.PersonnelPage{
		PageMeta:       s.meta("School Personnel", "Meet Our Dedicated Faculty and Staff", failed),
		Administrators: make([]dto.PersonCard, 0, len(sections.Administrators)),
		Departments:    presenter.MapGroups(sections.Departments, s.personCard),
		SupportStaff:   make([]dto.PersonCard, 0, len(sections.SupportStaff)),
		Empty:          sections.Empty(),
	}
	if sections.Director != nil {
		director := s.personCard(*sections.Director)
		page.Director = &director
	}
	for _, p := range sections.Administrators {
		page.Administrators = append(page.Administrators, s.personCard(p))
	}
	for _, p := range sections.SupportStaff {
		page.SupportStaff = append(page.SupportStaff, s.personCard(p))
	}
	if page.Departments == nil {
		page.Departments = []presenter.Group[dto.PersonCard]{}
	}
	if page.Empty {
		page.EmptyMessage = content.NoPersonnel
	}
	return page
}

// Announcements builds the announcements page and its important dates sidebar.
func (s *ContentService) Announcements(ctx context.Context) dto.AnnouncementsPage {
	var (
		announcements          []models.Announcement
		dates                  []models.ImportantDate
		annFailed, datesFailed bool
	)
	var g errgroup.Group
	g.Go(func() error {
		announcements, annFailed = fetch(ctx, s, "announcements", s.readers.Announcements.ListActive)
		return nil
	})
	g.Go(func() error {
		dates, datesFailed = fetch(ctx, s, "important_dates", s.readers.ImportantDates.ListActive)
		return nil
	})
	_ = g.Wait()

	page := dto.AnnouncementsPage{
		PageMeta:       s.meta("Announcements", "Stay Updated with School News and Events", annFailed || datesFailed),
		Announcements:  []dto.AnnouncementCard{},
		ImportantDates: []dto.ImportantDateItem{},
	}
	for _, a := range presenter.FilterActive(announcements, models.Announcement.Active) {
		page.Announcements = append(page.Announcements, AnnouncementCard(a))
	}
	for _, d := range presenter.FilterActive(dates, models.ImportantDate.Active) {
		page.ImportantDates = append(page.ImportantDates, dto.ImportantDateItem{Event: d.Event, Date: d.Date})
	}
	return page
}

// AnnouncementCard maps an announcement to its styled card.
func AnnouncementCard(a models.Announcement) dto.AnnouncementCard {
	return dto.AnnouncementCard{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Date:      a.Date,
		DateLabel: a.Date.Long(),
		Type:      a.Type,
		Style:     presenter.StyleFor(a),
	}
}

// Organizations builds the directory grouped by organization type.
func (s *ContentService) Organizations(ctx context.Context) dto.OrganizationsPage {
	orgs, failed := fetch(ctx, s, "organizations", s.readers.Organizations.List)

	ids := make([]string, len(orgs))
	for i, o := range orgs {
		ids[i] = o.ID
	}
	counts, countFailed := fetch(ctx, s, "organization_members", func(ctx context.Context) (map[string]int, error) {
		return s.readers.Organizations.CountMembers(ctx, ids)
	})

	groups := presenter.MapGroups(presenter.PresentOrganizations(orgs), func(o models.Organization) dto.OrganizationCard {
		card := organizationCard(o)
		card.MemberCount = counts[o.ID]
		return card
	})
	if groups == nil {
		groups = []presenter.Group[dto.OrganizationCard]{}
	}
	return dto.OrganizationsPage{
		PageMeta: s.meta("Student Organizations", "Clubs, Councils and Associations", failed || countFailed),
		Groups:   groups,
	}
}

// OrganizationDetail builds one organization page with its grouped roster.
// An unknown or unreadable organization yields ErrNotFound; a failed roster read degrades to no members.
func (s *ContentService) OrganizationDetail(ctx context.Context, id string) (*dto.OrganizationDetailPage, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, content.OrganizationNotFound)
	}

	var (
		org                      *models.Organization
		members                  []models.OrganizationMember
		orgFailed, membersFailed bool
	)
	var g errgroup.Group
	g.Go(func() error {
		org, orgFailed = fetch(ctx, s, "organizations", func(ctx context.Context) (*models.Organization, error) {
			found, err := s.readers.Organizations.GetByID(ctx, id)
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}
			return found, err
		})
		return nil
	})
	g.Go(func() error {
		members, membersFailed = fetch(ctx, s, "organization_members", func(ctx context.Context) ([]models.OrganizationMember, error) {
			return s.readers.Organizations.ListMembers(ctx, id)
		})
		return nil
	})
	_ = g.Wait()

	if org == nil {
		if orgFailed {
			s.metrics.MarkDegraded()
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, content.OrganizationNotFound)
	}

	groups := presenter.MapGroups(presenter.PresentMembers(members), s.memberCard)
	if groups == nil {
		groups = []presenter.Group[dto.MemberCard]{}
	}
	card := organizationCard(*org)
	card.MemberCount = len(members)
	return &dto.OrganizationDetailPage{
		PageMeta:     s.meta(org.Name, org.Type, membersFailed),
		Organization: card,
		Groups:       groups,
	}, nil
}

func (s *ContentService) photo(url *string) models.Media {
	return models.ParseMediaPtr(url).OrDefault(s.site.PlaceholderPhoto)
}

func (s *ContentService) personCard(p models.Personnel) dto.PersonCard {
	return dto.PersonCard{
		ID:          p.ID,
		Name:        p.Name,
		Position:    p.Position,
		Department:  models.StringValue(p.Department),
		Description: models.StringValue(p.Description),
		Photo:       s.photo(p.PhotoURL),
	}
}

func (s *ContentService) historicalCard(h models.HistoricalPersonnel) dto.PersonCard {
	return dto.PersonCard{
		ID:       h.ID,
		Name:     h.Name,
		Position: h.Position,
		Years:    models.StringValue(h.Years),
		Photo:    s.photo(h.PhotoURL),
	}
}

func (s *ContentService) memberCard(m models.OrganizationMember) dto.MemberCard {
	return dto.MemberCard{
		ID:       m.ID,
		Name:     m.Name,
		Position: models.StringValue(m.Position),
		Photo:    s.photo(m.PhotoURL),
	}
}

func organizationCard(o models.Organization) dto.OrganizationCard {
	return dto.OrganizationCard{
		ID:              o.ID,
		Name:            o.Name,
		Type:            o.Type,
		Description:     content.Or(o.Description, content.NoDescription),
		TeacherInCharge: models.StringValue(o.TeacherInCharge),
	}
}

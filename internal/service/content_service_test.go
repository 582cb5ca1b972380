package service

import (
	"context"
	"database/sql"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/bcsi-site/internal/content"
	"github.com/noah-isme/bcsi-site/internal/models"
	"github.com/noah-isme/bcsi-site/internal/presenter"
	"github.com/noah-isme/bcsi-site/pkg/config"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
)

var errBackend = errors.New("backend unavailable")

type fakeContentStore struct {
	announcements []models.Announcement
	dates         []models.ImportantDate
	personnel     []models.Personnel
	historical    []models.HistoricalPersonnel
	orgs          []models.Organization
	members       map[string][]models.OrganizationMember
	about         *models.AboutContent
	home          *models.HomeContent

	failAnnouncements bool
	failDates         bool
	failPersonnel     bool
	failHistorical    bool
	failOrgs          bool
	failMembers       bool
	failPages         bool

	reads int32
}

func (f *fakeContentStore) read(fail bool) error {
	atomic.AddInt32(&f.reads, 1)
	if fail {
		return errBackend
	}
	return nil
}

type fakeAnnouncementReader struct{ *fakeContentStore }

func (f fakeAnnouncementReader) ListActive(ctx context.Context) ([]models.Announcement, error) {
	return f.announcements, f.read(f.failAnnouncements)
}

type fakeDateReader struct{ *fakeContentStore }

func (f fakeDateReader) ListActive(ctx context.Context) ([]models.ImportantDate, error) {
	return f.dates, f.read(f.failDates)
}

type fakePersonnelReader struct{ *fakeContentStore }

func (f fakePersonnelReader) ListActive(ctx context.Context) ([]models.Personnel, error) {
	return f.personnel, f.read(f.failPersonnel)
}

type fakeHistoricalReader struct{ *fakeContentStore }

func (f fakeHistoricalReader) ListActive(ctx context.Context) ([]models.HistoricalPersonnel, error) {
	return f.historical, f.read(f.failHistorical)
}

func (f *fakeContentStore) List(ctx context.Context) ([]models.Organization, error) {
	return f.orgs, f.read(f.failOrgs)
}

func (f *fakeContentStore) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	if err := f.read(f.failOrgs); err != nil {
		return nil, err
	}
	for i := range f.orgs {
		if f.orgs[i].ID == id {
			return &f.orgs[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeContentStore) ListMembers(ctx context.Context, orgID string) ([]models.OrganizationMember, error) {
	return f.members[orgID], f.read(f.failMembers)
}

func (f *fakeContentStore) CountMembers(ctx context.Context, orgIDs []string) (map[string]int, error) {
	counts := map[string]int{}
	for _, id := range orgIDs {
		counts[id] = len(f.members[id])
	}
	return counts, f.read(f.failMembers)
}

func (f *fakeContentStore) GetAbout(ctx context.Context) (*models.AboutContent, error) {
	if err := f.read(f.failPages); err != nil {
		return nil, err
	}
	return f.about, nil
}

func (f *fakeContentStore) GetHome(ctx context.Context) (*models.HomeContent, error) {
	if err := f.read(f.failPages); err != nil {
		return nil, err
	}
	return f.home, nil
}

var testSite = config.SiteConfig{
	PlaceholderPhoto: "/static/img/placeholder-person.jpg",
	HeroImage:        "/static/img/school-building.jpg",
	StudentsImage:    "/static/img/students.jpg",
}

func newContentService(store *fakeContentStore) (*ContentService, *MetricsService) {
	metrics := NewMetricsService()
	svc := NewContentService(ContentReaders{
		Announcements:  fakeAnnouncementReader{store},
		ImportantDates: fakeDateReader{store},
		Personnel:      fakePersonnelReader{store},
		Historical:     fakeHistoricalReader{store},
		Organizations:  store,
		Pages:          store,
	}, testSite, metrics, zap.NewNop())
	return svc, metrics
}

const orgID = "4b0c1d8e-8f5e-4a57-9b54-5a1f2f0b7d11"

func TestHomeFallsBackPerField(t *testing.T) {
	store := &fakeContentStore{home: &models.HomeContent{HeroTitle: models.StringPtr("Enrollment is open"), WhyChooseTitle: models.StringPtr("  ")}}
	svc, _ := newContentService(store)

	page := svc.Home(context.Background())

	assert.False(t, page.Degraded)
	assert.Equal(t, "Enrollment is open", page.HeroTitle)
	assert.Equal(t, content.DefaultHeroSubtitle, page.HeroSubtitle)
	assert.Equal(t, content.DefaultWhyChooseTitle, page.WhyChooseTitle)
	assert.Equal(t, models.Media{Kind: models.MediaImage, Value: testSite.HeroImage}, page.HeroImage)
	assert.Len(t, page.Highlights, 4)
}

func TestHomeMissingRowUsesDefaults(t *testing.T) {
	svc, _ := newContentService(&fakeContentStore{})
	page := svc.Home(context.Background())
	assert.False(t, page.Degraded)
	assert.Equal(t, content.DefaultHeroTitle, page.HeroTitle)
}

func TestHomeReadFailureDegrades(t *testing.T) {
	svc, metrics := newContentService(&fakeContentStore{failPages: true})

	page := svc.Home(context.Background())

	assert.True(t, page.Degraded)
	assert.Equal(t, content.DefaultHeroTitle, page.HeroTitle)
	snapshot := metrics.Snapshot()
	assert.EqualValues(t, 1, snapshot.FetchFailures)
	assert.EqualValues(t, 1, snapshot.DegradedPages)
}

func TestAboutGroupsLeadersAndParsesCampusMap(t *testing.T) {
	store := &fakeContentStore{
		about: &models.AboutContent{
			History:      models.StringPtr("Founded in 1946."),
			CampusMapURL: models.StringPtr(`<iframe src="https://maps.example.com"></iframe>`),
		},
		historical: []models.HistoricalPersonnel{
			{ID: "j1", Name: "Mrs. Dela Cruz", Category: "jhs_principal"},
			{ID: "d1", Name: "Fr. Reyes", Category: "director", Years: models.StringPtr("1990-2000")},
			{ID: "s1", Name: "Mr. Santos", Category: "shs_principal", PhotoURL: models.StringPtr("https://cdn/s1.jpg")},
			{ID: "off", Name: "Hidden", Category: "director", IsActive: models.BoolPtr(false)},
		},
	}
	svc, _ := newContentService(store)

	page := svc.About(context.Background())

	assert.False(t, page.Degraded)
	assert.Equal(t, "Founded in 1946.", page.History)
	assert.Equal(t, content.DefaultVision, page.Vision)
	assert.Equal(t, content.DefaultMissionIntro, page.MissionIntro)
	assert.Len(t, page.CoreValues, 3)
	assert.Equal(t, models.MediaEmbed, page.CampusMap.Kind)

	require.NotNil(t, page.Directors)
	require.Len(t, page.Directors.People, 1)
	assert.Equal(t, "1990-2000", page.Directors.People[0].Years)
	assert.Equal(t, testSite.PlaceholderPhoto, page.Directors.People[0].Photo.Value)

	require.Len(t, page.Principals, 2)
	assert.Equal(t, "Senior High School", page.Principals[0].Heading)
	assert.Equal(t, "https://cdn/s1.jpg", page.Principals[0].People[0].Photo.Value)
	assert.Equal(t, "Junior High School", page.Principals[1].Heading)
}

func TestAboutPartialFailureKeepsOtherRead(t *testing.T) {
	store := &fakeContentStore{
		failHistorical: true,
		about:          &models.AboutContent{Vision: models.StringPtr("Our vision")},
	}
	svc, _ := newContentService(store)

	page := svc.About(context.Background())

	assert.True(t, page.Degraded)
	assert.Equal(t, "Our vision", page.Vision)
	assert.Nil(t, page.Directors)
	assert.Empty(t, page.Principals)
	assert.Equal(t, models.MediaNone, page.CampusMap.Kind)
}

func TestPersonnelPage(t *testing.T) {
	store := &fakeContentStore{personnel: []models.Personnel{
		{ID: "1", Name: "Fr. Cruz", Position: "School Director"},
		{ID: "2", Name: "Ms. Reyes", Position: "Vice Principal", Department: models.StringPtr("Support Staff")},
		{ID: "3", Name: "Mr. Lim", Position: "Teacher", Department: models.StringPtr("Science"), PhotoURL: models.StringPtr("https://cdn/3.jpg")},
		{ID: "4", Name: "Mrs. Go", Position: "Librarian", Department: models.StringPtr("Support Staff")},
		{ID: "5", Name: "Inactive", Position: "Teacher", IsActive: models.BoolPtr(false)},
	}}
	svc, _ := newContentService(store)

	page := svc.Personnel(context.Background())

	require.NotNil(t, page.Director)
	assert.Equal(t, "Fr. Cruz", page.Director.Name)
	require.Len(t, page.Administrators, 1)
	assert.Equal(t, "Ms. Reyes", page.Administrators[0].Name)
	require.Len(t, page.Departments, 1)
	assert.Equal(t, "Science", page.Departments[0].Name)
	assert.Equal(t, "https://cdn/3.jpg", page.Departments[0].Items[0].Photo.Value)
	require.Len(t, page.SupportStaff, 1)
	assert.False(t, page.Empty)
}

func TestPersonnelEmptyOnFailure(t *testing.T) {
	svc, _ := newContentService(&fakeContentStore{failPersonnel: true})

	page := svc.Personnel(context.Background())

	assert.True(t, page.Degraded)
	assert.True(t, page.Empty)
	assert.Equal(t, content.NoPersonnel, page.EmptyMessage)
	assert.NotNil(t, page.Departments)
}

func TestAnnouncementsExcludeExplicitlyInactive(t *testing.T) {
	date, _ := models.ParseDate("2025-06-01")
	store := &fakeContentStore{
		announcements: []models.Announcement{
			{ID: "a", Title: "Visible", Type: "important", Date: date, IsActive: models.BoolPtr(true)},
			{ID: "b", Title: "Hidden", IsActive: models.BoolPtr(false)},
			{ID: "c", Title: "Null flag", Type: "Event"},
		},
		dates: []models.ImportantDate{{ID: "d", Event: "Foundation Day", Date: "August 15"}},
	}
	svc, _ := newContentService(store)

	page := svc.Announcements(context.Background())

	require.Len(t, page.Announcements, 2)
	assert.Equal(t, "a", page.Announcements[0].ID)
	assert.Equal(t, "June 1, 2025", page.Announcements[0].DateLabel)
	assert.Equal(t, "destructive", page.Announcements[0].Style.Tone)
	assert.Equal(t, "c", page.Announcements[1].ID)
	assert.Equal(t, "calendar", page.Announcements[1].Style.Icon)
	require.Len(t, page.ImportantDates, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&store.reads))
}

func TestAnnouncementsDatesFailureStillShowsAnnouncements(t *testing.T) {
	store := &fakeContentStore{failDates: true, announcements: []models.Announcement{{ID: "a"}}}
	svc, _ := newContentService(store)

	page := svc.Announcements(context.Background())

	assert.True(t, page.Degraded)
	assert.Len(t, page.Announcements, 1)
	assert.Empty(t, page.ImportantDates)
}

func TestOrganizationsGroupedWithCounts(t *testing.T) {
	store := &fakeContentStore{
		orgs: []models.Organization{
			{ID: orgID, Name: "Supreme Student Government", Type: "Council"},
			{ID: "o2", Name: "Glee Club", Type: "Club", Description: models.StringPtr("We sing")},
		},
		members: map[string][]models.OrganizationMember{orgID: {{ID: "m1"}, {ID: "m2"}}},
	}
	svc, _ := newContentService(store)

	page := svc.Organizations(context.Background())

	require.Len(t, page.Groups, 2)
	assert.Equal(t, "Council", page.Groups[0].Name)
	assert.Equal(t, 2, page.Groups[0].Items[0].MemberCount)
	assert.Equal(t, content.NoDescription, page.Groups[0].Items[0].Description)
	assert.Equal(t, "We sing", page.Groups[1].Items[0].Description)
}

func TestOrganizationDetailGroupsMembers(t *testing.T) {
	store := &fakeContentStore{
		orgs: []models.Organization{{ID: orgID, Name: "SSG", Type: "Council"}},
		members: map[string][]models.OrganizationMember{orgID: {
			{ID: "m1", Name: "Ana", MemberCategory: models.StringPtr("Officers")},
			{ID: "m2", Name: "Ben", MemberCategory: models.StringPtr("Officers")},
			{ID: "m3", Name: "Cora", MemberCategory: models.StringPtr("Adviser")},
			{ID: "m4", Name: "Dan"},
		}},
	}
	svc, _ := newContentService(store)

	page, err := svc.OrganizationDetail(context.Background(), orgID)
	require.NoError(t, err)

	require.Len(t, page.Groups, 3)
	assert.Equal(t, "Officers", page.Groups[0].Name)
	assert.Len(t, page.Groups[0].Items, 2)
	assert.Equal(t, presenter.CategoryMembers, page.Groups[1].Name)
	assert.Equal(t, presenter.LayoutCompact, page.Groups[1].Layout)
	assert.Equal(t, "Adviser", page.Groups[2].Name)
	assert.Equal(t, 4, page.Organization.MemberCount)
}

func TestOrganizationDetailNotFound(t *testing.T) {
	svc, _ := newContentService(&fakeContentStore{})

	_, err := svc.OrganizationDetail(context.Background(), orgID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.OrganizationDetail(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestOrganizationDetailMembersFailureDegrades(t *testing.T) {
	store := &fakeContentStore{
		orgs:        []models.Organization{{ID: orgID, Name: "SSG"}},
		failMembers: true,
	}
	svc, _ := newContentService(store)

	page, err := svc.OrganizationDetail(context.Background(), orgID)
	require.NoError(t, err)
	assert.True(t, page.Degraded)
	assert.Empty(t, page.Groups)
}

func TestStaticPages(t *testing.T) {
	svc, _ := newContentService(&fakeContentStore{})
	assert.Len(t, svc.Programs().Tracks, 2)
	assert.Len(t, svc.Scholarships().Programs, 3)
	assert.Equal(t, "(075) 540-0145", svc.Contact().Contact.Phone)
}

package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/bcsi-site/internal/models"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
	"github.com/noah-isme/bcsi-site/pkg/export"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
	ContentType() string
	Extension() string
}

type exportSources struct {
	announcements func(ctx context.Context) ([]models.Announcement, error)
	personnel     func(ctx context.Context) ([]models.Personnel, error)
	messages      func(ctx context.Context) ([]models.ContactMessage, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders admin tables as CSV or PDF downloads.
type ExportService struct {
	sources   exportSources
	renderers map[string]tableRenderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService. The footer is printed on every PDF page.
func NewExportService(announcements *AnnouncementService, personnel *PersonnelService, contact *ContactService, footer string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		sources: exportSources{
			announcements: announcements.List,
			personnel:     personnel.List,
			messages:      contact.List,
		},
		renderers: map[string]tableRenderer{
			FormatCSV: export.NewCSVExporter(),
			FormatPDF: export.NewPDFExporter(footer),
		},
		logger: logger,
		now:    time.Now,
	}
}

// Export renders the named resource in the requested format.
func (s *ExportService) Export(ctx context.Context, resource, format string) (*ExportFile, error) {
	renderer, ok := s.renderers[strings.ToLower(format)]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	var (
		table export.Table
		err   error
	)
	switch resource {
	case "announcements":
		table, err = s.announcementTable(ctx)
	case "personnel":
		table, err = s.personnelTable(ctx)
	case "contact-messages":
		table, err = s.messageTable(ctx)
	default:
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown export resource")
	}
	if err != nil {
		return nil, err
	}

	data, err := renderer.Render(table)
	if err != nil {
		s.logger.Error("failed to render export", zap.String("resource", resource), zap.String("format", format), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to render export")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", resource, s.now().Format("20060102-150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

func (s *ExportService) announcementTable(ctx context.Context) (export.Table, error) {
	items, err := s.sources.announcements(ctx)
	if err != nil {
		return export.Table{}, err
	}
	table := export.Table{
		Title: "Announcements",
		Columns: []export.Column{
			{Key: "date", Header: "Date", Width: 1},
			{Key: "title", Header: "Title", Width: 2},
			{Key: "type", Header: "Type", Width: 1},
			{Key: "status", Header: "Status", Width: 1},
			{Key: "content", Header: "Content", Width: 4},
		},
	}
	for _, a := range items {
		table.Rows = append(table.Rows, map[string]string{
			"date":    a.Date.String(),
			"title":   a.Title,
			"type":    a.Type,
			"status":  statusLabel(a.IsActive),
			"content": a.Content,
		})
	}
	return table, nil
}

func (s *ExportService) personnelTable(ctx context.Context) (export.Table, error) {
	items, err := s.sources.personnel(ctx)
	if err != nil {
		return export.Table{}, err
	}
	table := export.Table{
		Title: "School Personnel",
		Columns: []export.Column{
			{Key: "order", Header: "#", Width: 0.5},
			{Key: "name", Header: "Name", Width: 2},
			{Key: "position", Header: "Position", Width: 2},
			{Key: "department", Header: "Department", Width: 1.5},
			{Key: "status", Header: "Status", Width: 1},
		},
	}
	for _, p := range items {
		order := ""
		if p.DisplayOrder != nil {
			order = strconv.Itoa(*p.DisplayOrder)
		}
		table.Rows = append(table.Rows, map[string]string{
			"order":      order,
			"name":       p.Name,
			"position":   p.Position,
			"department": models.StringValue(p.Department),
			"status":     statusLabel(p.IsActive),
		})
	}
	return table, nil
}

func (s *ExportService) messageTable(ctx context.Context) (export.Table, error) {
	items, err := s.sources.messages(ctx)
	if err != nil {
		return export.Table{}, err
	}
	table := export.Table{
		Title: "Contact Messages",
		Columns: []export.Column{
			{Key: "received", Header: "Received", Width: 1.5},
			{Key: "name", Header: "Name", Width: 1.5},
			{Key: "email", Header: "Email", Width: 2},
			{Key: "message", Header: "Message", Width: 5},
		},
	}
	for _, m := range items {
		table.Rows = append(table.Rows, map[string]string{
			"received": m.CreatedAt.Format("2006-01-02 15:04"),
			"name":     m.FullName,
			"email":    m.Email,
			"message":  m.Message,
		})
	}
	return table, nil
}

func statusLabel(flag *bool) string {
	if models.IsActive(flag) {
		return "Active"
	}
	return "Inactive"
}

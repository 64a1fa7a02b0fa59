package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/collegepredictor/internal/app/models"
	"github.com/yigit/collegepredictor/internal/pkg/apperrors"
	"github.com/yigit/collegepredictor/internal/pkg/filestorage"
	"github.com/yigit/collegepredictor/internal/pkg/helpers"
	"github.com/yigit/collegepredictor/internal/pkg/logger"
	"github.com/yigit/collegepredictor/internal/pkg/notifier"
	"github.com/yigit/collegepredictor/internal/pkg/report"
)

// WhatsAppReportBody is the text sent along with the report media
const WhatsAppReportBody = "Here is your college prediction report."

// ReportRequest asks for a report of one eligibility lookup
type ReportRequest struct {
	Student  models.Recipient
	School   string
	Query    EligibilityQuery
	WhatsApp bool
	Email    bool
}

// ReportService defines the interface for report generation
type ReportService interface {
	Generate(ctx context.Context, req ReportRequest) (*models.Report, error)
}

// ReportConfig names and places generated reports
type ReportConfig struct {
	Title  string
	Subdir string
}

type reportServiceImpl struct {
	eligibility EligibilityService
	storage     filestorage.FileStorage
	senders     map[models.DeliveryChannel]notifier.Sender
	config      ReportConfig
	now         func() time.Time
}

// NewReportService creates a new report service instance.
// A channel without a sender is reported as skipped.
func NewReportService(eligibility EligibilityService, storage filestorage.FileStorage, config ReportConfig, senders ...notifier.Sender) ReportService {
	byChannel := make(map[models.DeliveryChannel]notifier.Sender, len(senders))
	for _, s := range senders {
		if s != nil {
			byChannel[models.DeliveryChannel(s.Channel())] = s
		}
	}
	return &reportServiceImpl{
		eligibility: eligibility,
		storage:     storage,
		senders:     byChannel,
		config:      config,
		now:         time.Now,
	}
}

// reportFileName is college_report_<YYYYMMDDHHMMSS>_<8 hex>.pdf
func reportFileName(t time.Time) string {
	return fmt.Sprintf("college_report_%s_%s.pdf", helpers.ReportTimestamp(t), uuid.New().String()[:8])
}

func detailLines(req ReportRequest) []report.Line {
	var lines []report.Line
	add := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			lines = append(lines, report.Line{Label: label, Value: v})
		}
	}
	add("Name", req.Student.Name)
	add("Mobile", req.Student.Mobile)
	add("Email", req.Student.Email)
	add("School", req.School)
	add("Category", req.Query.Category)
	if req.Query.MinCutoff != nil && req.Query.MaxCutoff != nil {
		add("Cutoff Range", fmt.Sprintf("%g - %g", *req.Query.MinCutoff, *req.Query.MaxCutoff))
	}
	add("Branch", req.Query.Branch)
	add("District", req.Query.District)
	return lines
}

func offeringLine(o models.Offering) string {
	return fmt.Sprintf("%s - %s (%s)", o.CollegeName, o.BranchName, o.BranchCode)
}

// Generate runs the lookup, renders and stores the PDF, then delivers it.
// Delivery outcomes are reported per channel and never fail the call.
func (s *reportServiceImpl) Generate(ctx context.Context, req ReportRequest) (*models.Report, error) {
	if strings.TrimSpace(req.Student.Name) == "" {
		return nil, apperrors.NewValidationError("student.name", "Missing required fields")
	}

	offerings, err := s.eligibility.FindEligible(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	items := make([]string, 0, len(offerings))
	for _, o := range offerings {
		items = append(items, offeringLine(o))
	}

	data, err := report.Render(report.Document{
		Title:   s.config.Title,
		Details: detailLines(req),
		Items:   items,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	fileName := reportFileName(s.now())
	url, err := s.storage.SaveBytes(s.config.Subdir, fileName, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	result := &models.Report{
		FileName:     fileName,
		URL:          url,
		CollegeCount: len(offerings),
		Deliveries:   []models.Delivery{},
	}

	if req.WhatsApp {
		result.Deliveries = append(result.Deliveries, s.deliver(ctx, models.ChannelWhatsApp, notifier.Message{
			To:      req.Student.Mobile,
			Name:    req.Student.Name,
			Body:    WhatsAppReportBody,
			LinkURL: url,
		}))
	}
	if req.Email {
		result.Deliveries = append(result.Deliveries, s.deliver(ctx, models.ChannelEmail, notifier.Message{
			To:      req.Student.Email,
			Name:    req.Student.Name,
			Subject: s.config.Title,
			Body:    notifier.ReportEmailHTML(req.Student.Name, url),
			LinkURL: url,
		}))
	}

	logger.Info().
		Str("file", fileName).
		Int("colleges", len(offerings)).
		Int("deliveries", len(result.Deliveries)).
		Msg("Report generated")
	return result, nil
}

func (s *reportServiceImpl) deliver(ctx context.Context, channel models.DeliveryChannel, msg notifier.Message) models.Delivery {
	d := models.Delivery{Channel: channel}

	sender, ok := s.senders[channel]
	if !ok {
		d.Status = models.DeliverySkipped
		d.Error = apperrors.ErrChannelNotConfigured.Error()
		return d
	}
	if strings.TrimSpace(msg.To) == "" {
		d.Status = models.DeliverySkipped
		d.Error = "no recipient for channel"
		return d
	}

	ref, err := sender.Send(ctx, msg)
	switch {
	case errors.Is(err, notifier.ErrNotConfigured):
		d.Status = models.DeliverySkipped
		d.Error = apperrors.ErrChannelNotConfigured.Error()
	case err != nil:
		logger.Warn().Err(err).Str("channel", string(channel)).Msg("Report delivery failed")
		d.Status = models.DeliveryFailed
		d.Error = apperrors.ErrDeliveryFailed.Error()
	default:
		d.Status = models.DeliverySent
		d.Reference = ref
	}
	return d
}

package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/worklog-app/server/internal/config"
	"github.com/worklog-app/server/internal/domain/entries"
	"github.com/worklog-app/server/internal/sanitize"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Service renders and delivers summary emails. Delivery is config
// gated: disabled installs log-only, otherwise the configured provider
// (Resend API or STARTTLS SMTP) is used.
type Service struct {
	config       config.EmailConfig
	templates    *template.Template
	resendClient *resend.Client
	logger       zerolog.Logger
}

// SummaryData holds data for rendering the entry summary template.
type SummaryData struct {
	StartDate   string
	EndDate     string
	Count       int
	TotalHours  string
	TotalBilled string
	Entries     []SummaryEntry
	CurrentYear int
}

// SummaryEntry is one pre-formatted row of the summary table.
type SummaryEntry struct {
	StartTime   string
	Description string
	Hours       string
	Billed      string
}

func NewService(cfg config.EmailConfig, logger zerolog.Logger) (*Service, error) {
	if cfg.Enabled {
		if err := validateEmailAddress(cfg.From); err != nil {
			return nil, fmt.Errorf("invalid sender email in config: %w", err)
		}
	}

	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	service := &Service{
		config:    cfg,
		templates: templates,
		logger:    logger.With().Str("component", "email").Logger(),
	}
	if cfg.Enabled && cfg.Provider == "resend" {
		service.resendClient = resend.NewClient(cfg.ResendAPIKey)
	}
	return service, nil
}

// SendEntrySummary renders and delivers a summary of the given entries
// to the recipient.
func (s *Service) SendEntrySummary(ctx context.Context, to string, rng entries.DateRange, items []entries.Entry) error {
	if err := validateEmailAddress(to); err != nil {
		return fmt.Errorf("invalid recipient email: %w", err)
	}

	if !s.config.Enabled {
		s.logger.Info().
			Str("to", to).
			Int("entries", len(items)).
			Msg("email service disabled, skipping entry summary")
		return nil
	}

	data := buildSummaryData(rng, items)
	htmlBody, err := s.renderTemplate("entry_summary.html", data)
	if err != nil {
		return fmt.Errorf("failed to render entry summary template: %w", err)
	}

	subject := fmt.Sprintf("Billable entries %s – %s", data.StartDate, data.EndDate)
	if err := s.deliver(ctx, to, subject, htmlBody); err != nil {
		return fmt.Errorf("failed to send entry summary email: %w", err)
	}

	s.logger.Info().
		Str("to", to).
		Int("entries", len(items)).
		Msg("entry summary email sent")
	return nil
}

func (s *Service) deliver(ctx context.Context, to, subject, htmlBody string) error {
	if s.config.Provider == "resend" {
		return s.sendViaResend(ctx, to, subject, htmlBody)
	}
	return s.sendViaSMTP(to, subject, htmlBody)
}

func buildSummaryData(rng entries.DateRange, items []entries.Entry) SummaryData {
	data := SummaryData{
		StartDate:   rng.Start.Format("Jan 2, 2006"),
		EndDate:     rng.End.Format("Jan 2, 2006"),
		Count:       len(items),
		CurrentYear: time.Now().Year(),
	}

	var totalHours float64
	var totalCents int64
	for _, item := range items {
		row := SummaryEntry{
			StartTime:   item.StartTime.Format("Mon Jan 2 15:04"),
			Description: sanitize.Text(item.Description),
			Hours:       "—",
			Billed:      "—",
		}
		if item.Hours != nil {
			totalHours += *item.Hours
			row.Hours = formatHours(*item.Hours)
		}
		if item.BillAmount != nil {
			totalCents += *item.BillAmount
			row.Billed = formatCents(*item.BillAmount)
		}
		data.Entries = append(data.Entries, row)
	}
	data.TotalHours = formatHours(totalHours)
	data.TotalBilled = formatCents(totalCents)
	return data
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// validateEmailAddress validates an email address for format and header
// injection attempts.
func validateEmailAddress(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("invalid email address: contains newline characters")
	}
	return nil
}

func (s *Service) renderTemplate(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

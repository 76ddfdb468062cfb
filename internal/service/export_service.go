package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/dto"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/export"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/storage"
)

type timetableReader interface {
	Get(ctx context.Context, userID string) (*dto.TimetableResponse, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ExportFormat
	ExpiresAt    time.Time
}

var exportHeaders = []string{"Day", "Start", "End", "Type", "Subject", "Duration (min)", "Completed"}

// ExportService renders stored timetables to files and signs download links.
type ExportService struct {
	timetables timetableReader
	storage    fileStorage
	csv        csvRenderer
	pdf        pdfRenderer
	signer     *storage.SignedURLSigner
	logger     *zap.Logger
	cfg        ExportConfig
	now        func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(timetables timetableReader, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		timetables: timetables,
		storage:    store,
		csv:        csv,
		pdf:        pdf,
		signer:     signer,
		logger:     logger,
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Generate renders the job owner's current timetable and stores the file.
func (s *ExportService) Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	tt, err := s.timetables.Get(ctx, job.UserID)
	if err != nil {
		return nil, err
	}
	if job.Params.TimetableVersion != 0 && tt.Version != job.Params.TimetableVersion {
		s.logger.Info("exporting newer timetable version",
			zap.String("job_id", job.ID),
			zap.Int("requested", job.Params.TimetableVersion),
			zap.Int("current", tt.Version),
		)
	}

	dataset := BuildTimetableDataset(tt, job.Params.IncludeBreaks)
	var payload []byte
	switch job.Params.Format {
	case models.ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, fmt.Sprintf("Weekly Study Timetable (v%d)", tt.Version))
	default:
		err = fmt.Errorf("unsupported format %s", job.Params.Format)
	}
	if err != nil {
		return nil, err
	}

	relPath, err := s.storage.Save(s.buildFilename(job, tt.Version), payload)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/export/%s", prefix, token),
		Format:       job.Params.Format,
		ExpiresAt:    expiresAt,
	}, nil
}

// BuildTimetableDataset flattens a timetable into one row per session in
// weekday order. Breaks are skipped unless includeBreaks is set.
func BuildTimetableDataset(tt *dto.TimetableResponse, includeBreaks bool) export.Dataset {
	dataset := export.Dataset{Headers: exportHeaders}
	if tt == nil {
		return dataset
	}
	for _, day := range tt.Days {
		for _, session := range day.Sessions {
			if !session.IsStudy() && !includeBreaks {
				continue
			}
			subject := session.SubjectName
			completed := ""
			if session.IsStudy() {
				completed = "no"
				if session.Completed {
					completed = "yes"
				}
			}
			dataset.Add(
				day.DayName,
				session.StartTime,
				session.EndTime,
				string(session.Type),
				subject,
				strconv.Itoa(session.Duration),
				completed,
			)
		}
	}
	return dataset
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl, or the configured ResultTTL when ttl <= 0.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) buildFilename(job *models.ExportJob, version int) string {
	timestamp := s.now().Format("20060102_150405")
	return fmt.Sprintf("timetable_%s_v%d_%s.%s", sanitizeFilename(job.ID), version, timestamp, job.Params.Format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

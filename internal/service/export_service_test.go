package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/dto"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/planner"
	appErrors "github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/errors"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/export"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/storage"
)

type timetableReaderStub struct {
	tables map[string]*dto.TimetableResponse
}

func (r timetableReaderStub) Get(ctx context.Context, userID string) (*dto.TimetableResponse, error) {
	tt, ok := r.tables[userID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
	}
	return tt, nil
}

func sampleTimetable() *dto.TimetableResponse {
	days := make([]planner.Day, 0, planner.DaysPerWeek)
	for i := 0; i < planner.DaysPerWeek; i++ {
		days = append(days, planner.NewDay(i, nil))
	}
	days[0] = days[0].WithSessions([]planner.Session{
		{ID: "s1", Type: planner.SessionStudy, SubjectID: "math", SubjectName: "Math", Color: "#EF4444", Duration: 45, StartTime: "8:00 AM", EndTime: "8:45 AM", Completed: true},
		{ID: "b1", Type: planner.SessionBreak, Color: "#94A3B8", Duration: 10, StartTime: "8:45 AM", EndTime: "8:55 AM"},
		{ID: "s2", Type: planner.SessionStudy, SubjectID: "bio", SubjectName: "Biology, Cells", Color: "#3B82F6", Duration: 45, StartTime: "8:55 AM", EndTime: "9:40 AM"},
	})
	return &dto.TimetableResponse{ID: "tt-1", Version: 3, Days: days}
}

func newExportServiceForTest(t *testing.T) (*ExportService, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	reader := timetableReaderStub{tables: map[string]*dto.TimetableResponse{"u1": sampleTimetable()}}
	cfg := ExportConfig{APIPrefix: "/api/v1/", ResultTTL: time.Hour}
	svc := NewExportService(reader, store, signer, cfg, zap.NewNop(), export.NewCSVExporter(), export.NewPDFExporter())
	return svc, store
}

func readStored(t *testing.T, store *storage.LocalStorage, relPath string) []byte {
	t.Helper()
	f, err := store.Open(relPath)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return data
}

func TestBuildTimetableDataset(t *testing.T) {
	ds := BuildTimetableDataset(sampleTimetable(), false)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "Monday", ds.Rows[0]["Day"])
	assert.Equal(t, "Math", ds.Rows[0]["Subject"])
	assert.Equal(t, "yes", ds.Rows[0]["Completed"])
	assert.Equal(t, "no", ds.Rows[1]["Completed"])

	withBreaks := BuildTimetableDataset(sampleTimetable(), true)
	require.Len(t, withBreaks.Rows, 3)
	assert.Equal(t, "break", withBreaks.Rows[1]["Type"])
	assert.Equal(t, "", withBreaks.Rows[1]["Completed"])
	assert.Equal(t, "10", withBreaks.Rows[1]["Duration (min)"])

	assert.Empty(t, BuildTimetableDataset(nil, true).Rows)
}

func TestExportServiceGenerateCSV(t *testing.T) {
	svc, store := newExportServiceForTest(t)
	job := &models.ExportJob{
		ID:     "job-1",
		UserID: "u1",
		Params: models.ExportJobParams{Format: models.ExportFormatCSV, TimetableVersion: 3},
	}
	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.URL, "/api/v1/export/"))
	assert.True(t, strings.HasSuffix(result.URL, result.Token))
	assert.True(t, strings.HasSuffix(result.RelativePath, ".csv"))
	assert.Contains(t, result.RelativePath, "_v3_")

	data := readStored(t, store, result.RelativePath)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Day,Start,End,Type,Subject,Duration (min),Completed", lines[0])
	assert.Equal(t, "Monday,8:00 AM,8:45 AM,study,Math,45,yes", lines[1])
	assert.Equal(t, `Monday,8:55 AM,9:40 AM,study,"Biology, Cells",45,no`, lines[2])

	jobID, relPath, _, err := svc.ParseToken(result.Token, false)
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)
	assert.Equal(t, result.RelativePath, relPath)
}

func TestExportServiceGeneratePDF(t *testing.T) {
	svc, store := newExportServiceForTest(t)
	job := &models.ExportJob{
		ID:     "job-2",
		UserID: "u1",
		Params: models.ExportJobParams{Format: models.ExportFormatPDF, IncludeBreaks: true},
	}
	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, models.ExportFormatPDF, result.Format)
	assert.True(t, bytes.HasPrefix(readStored(t, store, result.RelativePath), []byte("%PDF-")))
}

func TestExportServiceGenerateErrors(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	_, err := svc.Generate(context.Background(), nil)
	assert.Error(t, err)

	_, err = svc.Generate(context.Background(), &models.ExportJob{ID: "job-3", UserID: "nobody", Params: models.ExportJobParams{Format: models.ExportFormatCSV}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Generate(context.Background(), &models.ExportJob{ID: "job-4", UserID: "u1", Params: models.ExportJobParams{Format: "xlsx"}})
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "na", sanitizeFilename(""))
	assert.Equal(t, "a_b-c-d", sanitizeFilename("a b/c:d"))
	assert.Len(t, sanitizeFilename(strings.Repeat("x", 150)), 100)
}

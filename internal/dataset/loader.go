package dataset

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"love-vs-grades-go/internal/ingest"
	"love-vs-grades-go/internal/logger"
	"love-vs-grades-go/internal/types"
)

// XLSXSource reads responses from a workbook downloaded from the response
// sheet. It satisfies the same contract as the live sheet client.
type XLSXSource struct {
	Path string
	Log  *logger.Logger
}

func NewXLSXSource(path string, log *logger.Logger) *XLSXSource {
	if log == nil {
		log = logger.Discard()
	}
	return &XLSXSource{Path: path, Log: &logger.Logger{Entry: log.Component("dataset").WithField("path", path)}}
}

// Fetch re-reads the workbook on every call so edits show up on refresh.
func (s *XLSXSource) Fetch(ctx context.Context) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	rows, err := readRows(f)
	if err != nil {
		return nil, err
	}
	s.Log.WithField("rows", len(rows)).Debug("workbook loaded")
	return rows, nil
}

// Load reads raw rows from a workbook stream.
func Load(r io.Reader) ([]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readRows(f)
}

// readRows turns the first sheet into one map per data row, keyed by the
// header cells. Columns with a blank header and fully blank rows are skipped.
func readRows(f *excelize.File) ([]any, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	out := []any{}
	if len(rows) <= 1 {
		return out, nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	for _, r := range rows[1:] {
		rec := map[string]any{}
		for i, cell := range r {
			if i >= len(header) || header[i] == "" || strings.TrimSpace(cell) == "" {
				continue
			}
			rec[header[i]] = cell
		}
		if len(rec) == 0 {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Columns is the header row written by WriteSubmissions, in the naming the
// response sheet uses.
var Columns = []string{
	"ID", "Timestamp", "IP", "Name", "Grade", "Gender", "Status", "Focus Level",
	"Homework Motivation", "Sleep Quality", "Emotional Strength", "Screen Time",
	"Notifications", "Study Partner", "Mood Impact", "Reflection",
	"Romantic Thoughts", "Romantic Impact", "Study Change", "Total Time (s)",
}

// WriteSubmissions writes normalized submissions as a single-sheet workbook
// that XLSXSource can read back.
func WriteSubmissions(w io.Writer, subs []types.Submission) error {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Responses"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, toRow(Columns)); err != nil {
		return err
	}
	for i, s := range subs {
		a := s.Answers
		row := []any{
			s.ID, s.Timestamp, s.IP, a.Name, a.Grade, a.Gender, a.Status, a.FocusLevel,
			a.HomeworkMotivation, a.SleepQuality, a.EmotionalEffectStrength, a.ScreenTime,
			a.NotificationsFreq, a.StudyPartner, a.MoodImpact, a.Reflection,
			a.RomanticThoughtsFreq, a.RomanticThoughtImpact, a.StudyTimeChange, s.Metrics.TotalTimeSeconds,
		}
		for j, v := range row {
			if n, ok := v.(float64); ok {
				row[j] = ingest.Stringify(n)
			}
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toRow(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"love-vs-grades-go/internal/aggregator"
	"love-vs-grades-go/internal/archetype"
	"love-vs-grades-go/internal/dataset"
	"love-vs-grades-go/internal/types"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeDataset(t *testing.T) string {
	t.Helper()
	subs := []types.Submission{
		{ID: "1", Answers: types.Answers{Grade: "10", Status: "single", FocusLevel: 90, StudyPartner: "na", NotificationsFreq: "sometimes"}},
		{ID: "2", Answers: types.Answers{Grade: "10", Status: "taken", FocusLevel: 40, StudyPartner: "na", NotificationsFreq: "often"}},
		{ID: "3", Answers: types.Answers{Grade: "11", Status: "single", FocusLevel: 70, StudyPartner: "na", NotificationsFreq: "rarely"}},
	}
	var buf bytes.Buffer
	require.NoError(t, dataset.WriteSubmissions(&buf, subs))
	path := filepath.Join(t.TempDir(), "responses.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestClassifyFromStdin(t *testing.T) {
	out, err := execute(t, `{"status":"single","focus_level":"100","notifications_freq":"never"}`, "classify")
	require.NoError(t, err)
	var res types.ClassificationResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, archetype.UnbotheredIcon, res.Archetype.ID)
}

func TestClassifyRejectsBadInput(t *testing.T) {
	_, err := execute(t, `[1,2]`, "classify")
	assert.Error(t, err)
}

func TestSummarizeFromWorkbook(t *testing.T) {
	path := writeDataset(t)
	out, err := execute(t, "", "summarize", "--dataset", path, "--grade", "10")
	require.NoError(t, err)
	var d aggregator.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 2, d.Total)
	require.Len(t, d.FocusByStatus, 2)
	assert.Equal(t, "Single", d.FocusByStatus[0].Name)
}

func TestExportReport(t *testing.T) {
	path := writeDataset(t)
	dest := filepath.Join(t.TempDir(), "report.xlsx")
	out, err := execute(t, "", "export", "--dataset", path, "-o", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+dest)

	raw := filepath.Join(t.TempDir(), "raw.xlsx")
	_, err = execute(t, "", "export", "--dataset", path, "--raw", "--grade", "11", "-o", raw)
	require.NoError(t, err)
	f, err := os.Open(raw)
	require.NoError(t, err)
	defer f.Close()
	rows, err := dataset.Load(f)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSummarizeNeedsSource(t *testing.T) {
	t.Setenv("SHEET_URL", "")
	t.Setenv("DATASET_PATH", "")
	_, err := execute(t, "", "summarize")
	assert.Error(t, err)
}

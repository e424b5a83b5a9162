package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"screenerpro/engine/internal/screening"
)

func TestWriteXLSX(t *testing.T) {
	cgpa := 3.4
	rows := []screening.ResultRow{
		{
			FileName:        "asha.pdf",
			CandidateName:   "Asha Patel",
			Score:           87.5,
			YearsExperience: 6,
			CGPA:            &cgpa,
			MatchedSkills:   []string{"Python", "SQL"},
			MissingSkills:   []string{"Docker"},
			Similarity:      0.82,
			Tier:            screening.TierStrong,
			CertificateRank: "Strong",
			Assessment:      "Scored 87.5 via heuristic strategy",
		},
		{
			FileName:   "broken.pdf",
			Tier:       "Error",
			Assessment: "text extraction failed",
			Failed:     true,
		},
	}

	outPath := filepath.Join(t.TempDir(), "report")
	report := NewReportService()
	require.NoError(t, report.WriteXLSX(rows, "Backend Engineer", outPath))

	// The .xlsx suffix is appended when missing.
	written := outPath + ".xlsx"
	_, err := os.Stat(written)
	require.NoError(t, err)

	f, err := excelize.OpenFile(written)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Ranked Candidates"}, f.GetSheetList())

	name, err := f.GetCellValue("Ranked Candidates", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Asha Patel", name)

	tier, err := f.GetCellValue("Ranked Candidates", "E2")
	require.NoError(t, err)
	assert.Equal(t, screening.TierStrong, tier)
}

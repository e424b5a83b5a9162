package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"screenerpro/engine/internal/screening"
)

// ReportService writes a ranked screening run to an XLSX workbook: one
// summary sheet and one row-per-candidate sheet with tier colouring.
type ReportService interface {
	WriteXLSX(rows []screening.ResultRow, jobTitle string, outputPath string) error
}

type reportService struct{}

func NewReportService() ReportService {
	return &reportService{}
}

var tierFillColors = map[string]string{
	screening.TierExceptional: "C6EFCE",
	screening.TierStrong:      "D9EAD3",
	screening.TierPromising:   "FFEB9C",
	screening.TierNeedsReview: "FFE0B2",
	screening.TierLimited:     "FFC7CE",
}

// WriteXLSX implements ReportService.
func (r *reportService) WriteXLSX(rows []screening.ResultRow, jobTitle string, outputPath string) error {
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Summary"
	rankedSheet := "Ranked Candidates"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(rankedSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := r.writeSummary(f, summarySheet, rows, jobTitle); err != nil {
		return fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if err := r.writeRanked(f, rankedSheet, rows); err != nil {
		return fmt.Errorf("failed to write ranked sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func (r *reportService) writeSummary(f *excelize.File, sheet string, rows []screening.ResultRow, jobTitle string) error {
	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "B", 50)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	tierCounts := make(map[string]int)
	failed := 0
	var totalScore float64
	for _, row := range rows {
		if row.Failed {
			failed++
			continue
		}
		tierCounts[row.Tier]++
		totalScore += row.Score
	}
	scored := len(rows) - failed

	row := 1
	setLabel := func(label string, value interface{}) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), value)
		row++
	}

	f.SetCellValue(sheet, "A1", "Screening Report")
	f.SetCellStyle(sheet, "A1", "B1", headerStyle)
	f.MergeCell(sheet, "A1", "B1")
	row = 3

	setLabel("Job Title:", jobTitle)
	setLabel("Generated:", time.Now().Format("2006-01-02 15:04:05"))
	setLabel("Resumes Submitted:", len(rows))
	setLabel("Resumes Scored:", scored)
	setLabel("Extraction Failures:", failed)
	if scored > 0 {
		setLabel("Average Score:", fmt.Sprintf("%.2f", totalScore/float64(scored)))
	}
	row++

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Tier Distribution:")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row++

	for _, tier := range []string{
		screening.TierExceptional,
		screening.TierStrong,
		screening.TierPromising,
		screening.TierNeedsReview,
		screening.TierLimited,
	} {
		setLabel(tier+":", tierCounts[tier])
	}
	return nil
}

func (r *reportService) writeRanked(f *excelize.File, sheet string, rows []screening.ResultRow) error {
	headers := []string{
		"Rank", "File", "Candidate", "Score", "Tier", "Experience (yrs)",
		"CGPA", "Similarity", "Matched Skills", "Missing Skills",
		"Email", "Phone", "Location", "Certificate", "Assessment",
	}
	widths := []float64{6, 28, 24, 9, 14, 14, 8, 10, 40, 40, 28, 16, 18, 12, 50}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	tierStyles := make(map[string]int, len(tierFillColors))
	for tier, color := range tierFillColors {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return err
		}
		tierStyles[tier] = style
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, result := range rows {
		rowNum := i + 2
		cgpa := ""
		if result.CGPA != nil {
			cgpa = fmt.Sprintf("%.2f", *result.CGPA)
		}
		values := []interface{}{
			i + 1,
			result.FileName,
			result.CandidateName,
			fmt.Sprintf("%.1f", result.Score),
			result.Tier,
			fmt.Sprintf("%.1f", result.YearsExperience),
			cgpa,
			fmt.Sprintf("%.3f", result.Similarity),
			strings.Join(result.MatchedSkills, ", "),
			strings.Join(result.MissingSkills, ", "),
			result.Email,
			result.Phone,
			result.Location,
			result.CertificateRank,
			result.Assessment,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			f.SetCellValue(sheet, cell, value)
		}

		if style, ok := tierStyles[result.Tier]; ok {
			first, _ := excelize.CoordinatesToCellName(1, rowNum)
			last, _ := excelize.CoordinatesToCellName(len(headers), rowNum)
			f.SetCellStyle(sheet, first, last, style)
		}
	}

	if len(rows) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), len(rows)+1)
		f.AutoFilter(sheet, "A1:"+last, []excelize.AutoFilterOptions{})
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	return nil
}

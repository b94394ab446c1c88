package quiz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Quiz History"

var exportHeaders = []string{"Date", "Topic", "Score", "Total", "Accuracy %", "Readiness", "Next Topic"}

// Export renders the user's quiz history as an xlsx workbook.
func (s *Service) Export(ctx context.Context, userID string) ([]byte, error) {
	attempts, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	return renderWorkbook(attempts)
}

func renderWorkbook(attempts []Attempt) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, exportSheet, exportHeaders); err != nil {
		return nil, err
	}
	for r, a := range attempts {
		row := []any{
			a.CreatedAt.Format("2006-01-02 15:04"),
			a.Topic,
			a.Score,
			a.Total,
			accuracy(a.Score, a.Total),
			a.Analysis["readiness_score"],
			a.Analysis["next_topic"],
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", r+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func accuracy(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score*1000/total) / 10
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return err
	}
	lastCell, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCell, style); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		return err
	}
	return f.SetSheetRow(sheet, "A1", &headers)
}

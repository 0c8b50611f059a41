package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"digiwave-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// --- Interface ---

// ReportService builds downloadable xlsx workbooks from attendance and
// payment data.
type ReportService interface {
	AttendanceReport(ctx context.Context, year int, month time.Month) (string, []byte, error)
	PaymentReport(ctx context.Context, from, to time.Time) (string, []byte, error)
}

type reportService struct {
	attendanceRepo repository.AttendanceRepository
	paymentRepo    repository.PaymentRepository
}

func NewReportService(attendanceRepo repository.AttendanceRepository, paymentRepo repository.PaymentRepository) ReportService {
	return &reportService{attendanceRepo: attendanceRepo, paymentRepo: paymentRepo}
}

// --- Implementation ---

func (s *reportService) AttendanceReport(ctx context.Context, year int, month time.Month) (string, []byte, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	records, err := s.attendanceRepo.ListInRange(ctx, from, to)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch attendance: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Attendance"
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return "", nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	widths := []float64{26, 14, 12, 10, 10, 40}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return "", nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, headerStyle, rowStyle, err := reportStyles(f)
	if err != nil {
		return "", nil, err
	}

	lastCol := columns[len(columns)-1]
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return "", nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Attendance Report - %s %d", month, year))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	headers := []string{"Staff", "Date", "Status", "Check In", "Check Out", "Note"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s3", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A3", lastCol+"3", headerStyle)

	row := 4
	for _, rec := range records {
		rowStr := fmt.Sprintf("%d", row)
		username := ""
		if rec.User != nil {
			username = rec.User.Username
		}
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeCell(username))
		f.SetCellValue(sheetName, "B"+rowStr, rec.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, "C"+rowStr, rec.Status)
		if rec.CheckIn != nil {
			f.SetCellValue(sheetName, "D"+rowStr, rec.CheckIn.Format("15:04"))
		}
		if rec.CheckOut != nil {
			f.SetCellValue(sheetName, "E"+rowStr, rec.CheckOut.Format("15:04"))
		}
		f.SetCellValue(sheetName, "F"+rowStr, sanitizeCell(rec.Note))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, rowStyle)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", nil, fmt.Errorf("write excel: %w", err)
	}

	filename := fmt.Sprintf("attendance-%d-%02d.xlsx", year, month)
	return filename, buf.Bytes(), nil
}

func (s *reportService) PaymentReport(ctx context.Context, from, to time.Time) (string, []byte, error) {
	payments, err := s.paymentRepo.ListInRange(ctx, from, to)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch payments: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Payments"
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return "", nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	widths := []float64{14, 30, 18, 16, 22, 40}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return "", nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, headerStyle, rowStyle, err := reportStyles(f)
	if err != nil {
		return "", nil, err
	}

	lastCol := columns[len(columns)-1]
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return "", nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Payments %s to %s", from.Format("2006-01-02"), to.Format("2006-01-02")))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	headers := []string{"Date", "Project", "Amount", "Method", "Reference", "Note"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s3", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A3", lastCol+"3", headerStyle)

	row := 4
	total := decimal.Zero
	for _, payment := range payments {
		rowStr := fmt.Sprintf("%d", row)
		projectName := ""
		if payment.Project != nil {
			projectName = payment.Project.Name
		}
		f.SetCellValue(sheetName, "A"+rowStr, payment.PaymentDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeCell(projectName))
		f.SetCellValue(sheetName, "C"+rowStr, payment.Amount.StringFixed(2))
		f.SetCellValue(sheetName, "D"+rowStr, payment.Method)
		f.SetCellValue(sheetName, "E"+rowStr, sanitizeCell(payment.Reference))
		f.SetCellValue(sheetName, "F"+rowStr, sanitizeCell(payment.Note))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, rowStyle)
		total = total.Add(payment.Amount)
		row++
	}

	row++
	totalRow := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "B"+totalRow, "Total Received:")
	f.SetCellValue(sheetName, "C"+totalRow, total.StringFixed(2))
	f.SetCellStyle(sheetName, "B"+totalRow, "C"+totalRow, headerStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", nil, fmt.Errorf("write excel: %w", err)
	}

	filename := fmt.Sprintf("payments-%s-%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	return filename, buf.Bytes(), nil
}

// --- Helpers ---

func reportStyles(f *excelize.File) (title, header, row int, err error) {
	title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("create title style: %w", err)
	}

	header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("create header style: %w", err)
	}

	row, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("create row style: %w", err)
	}

	return title, header, row, nil
}

// sanitizeCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}

// Package export renders analysis reports to JSON, CSV, XLSX and plain
// text summaries.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/luxaudit/luxaudit/internal/analyze"
)

// Service writes report artifacts under a single output directory.
type Service struct {
	outputDir string
	logger    *slog.Logger
}

func NewService(outputDir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if outputDir == "" {
		outputDir = "output"
	}
	return &Service{outputDir: outputDir, logger: logger}
}

// WriteReport renders the report in the given format and writes it next to
// a timestamped basename derived from the source file. Returns the written
// path.
func (s *Service) WriteReport(report *analyze.Report, format string) (string, error) {
	start := time.Now()

	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = ReportJSON(report)
	case "csv":
		data, err = ReportCSV(report)
	case "xlsx":
		data, err = ReportXLSX(report)
	case "txt":
		data = []byte(Summary(report))
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	base := strings.TrimSuffix(report.SourceFile, filepath.Ext(report.SourceFile))
	name := fmt.Sprintf("%s_%s_%s.%s", base, report.Mode, time.Now().Format("20060102_150405"), format)
	path := filepath.Join(s.outputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	s.logger.Info("export.ok",
		"format", format,
		"path", path,
		"rooms", report.TotalRooms,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return path, nil
}

// ReportJSON renders the full report as indented JSON.
func ReportJSON(report *analyze.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

var csvHeader = []string{
	"room_name", "room_type", "area_m2",
	"illuminance_avg_lux", "uniformity", "ugr", "power_density_w_m2",
	"color_temperature_k", "cri",
	"data_completeness", "compliance_rate",
}

// ReportCSV renders one row per room.
func ReportCSV(report *analyze.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, room := range report.Rooms {
		row := []string{
			room.Name,
			string(room.Type),
			fmt.Sprintf("%.2f", room.Area),
			fmtOpt(room.IlluminanceAvg, "%.1f"),
			fmtOpt(room.Uniformity, "%.2f"),
			fmtOpt(room.UGR, "%.1f"),
			fmtOpt(room.PowerDensity, "%.2f"),
			fmtOpt(room.ColorTemperature, "%.0f"),
			fmtOpt(room.CRI, "%.0f"),
			fmt.Sprintf("%.2f", room.DataCompleteness),
			fmt.Sprintf("%.2f", room.ComplianceRate),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ReportXLSX renders a workbook with a Rooms sheet and a Compliance sheet.
func ReportXLSX(report *analyze.Report) ([]byte, error) {
	f := excelize.NewFile()

	const roomsSheet = "Rooms"
	if index, _ := f.GetSheetIndex(roomsSheet); index == -1 {
		if _, err := f.NewSheet(roomsSheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(roomsSheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Room", "Type", "Area (m²)",
		"Illuminance (lux)", "Uniformity", "UGR", "Power Density (W/m²)",
		"CCT (K)", "CRI",
		"Completeness", "Compliance Rate",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(roomsSheet, cell, h)
	}

	row := 2
	for _, r := range report.Rooms {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(roomsSheet, cell, v)
		}
		write(1, truncate(r.Name, 60))
		write(2, string(r.Type))
		write(3, r.Area)
		writeOpt(write, 4, r.IlluminanceAvg)
		writeOpt(write, 5, r.Uniformity)
		writeOpt(write, 6, r.UGR)
		writeOpt(write, 7, r.PowerDensity)
		writeOpt(write, 8, r.ColorTemperature)
		writeOpt(write, 9, r.CRI)
		write(10, r.DataCompleteness)
		write(11, r.ComplianceRate)
		row++
	}

	_ = f.SetColWidth(roomsSheet, "A", "A", 28)
	_ = f.SetColWidth(roomsSheet, "B", "B", 14)
	_ = f.SetColWidth(roomsSheet, "C", "I", 16)
	_ = f.SetColWidth(roomsSheet, "J", "K", 14)

	const compSheet = "Compliance"
	if _, err := f.NewSheet(compSheet); err != nil {
		return nil, err
	}
	compHeaders := []string{"Room", "Parameter", "Actual", "Required", "Unit", "Compliant", "Deviation", "Notes"}
	for i, h := range compHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(compSheet, cell, h)
	}
	row = 2
	for _, r := range report.Rooms {
		for _, res := range r.Compliance {
			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(compSheet, cell, v)
			}
			write(1, truncate(r.Name, 60))
			write(2, res.Parameter)
			write(3, res.ActualValue)
			write(4, res.RequiredValue)
			write(5, res.Unit)
			write(6, res.IsCompliant)
			write(7, res.Deviation)
			write(8, res.Notes)
			row++
		}
	}
	_ = f.SetColWidth(compSheet, "A", "A", 28)
	_ = f.SetColWidth(compSheet, "B", "B", 20)
	_ = f.SetColWidth(compSheet, "H", "H", 30)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// Summary renders the human-readable plain-text digest.
func Summary(report *analyze.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Lighting Analysis Report\n")
	fmt.Fprintf(&b, "========================\n\n")
	fmt.Fprintf(&b, "Project:     %s\n", report.ProjectName)
	fmt.Fprintf(&b, "Source:      %s\n", report.SourceFile)
	fmt.Fprintf(&b, "Mode:        %s\n", report.Mode)
	fmt.Fprintf(&b, "Report type: %s\n", report.ReportType)
	fmt.Fprintf(&b, "Standard:    %s\n", report.Standard)
	fmt.Fprintf(&b, "Extraction:  %s (score %.2f)\n\n", report.ExtractionMethod, report.ExtractionScore)

	fmt.Fprintf(&b, "Rooms: %d, total area %.1f m²\n", report.TotalRooms, report.TotalArea)
	fmt.Fprintf(&b, "Mean illuminance %.0f lux, uniformity %.2f, UGR %.1f, power density %.1f W/m²\n",
		report.Stats.IlluminanceAvg, report.Stats.UniformityAvg, report.Stats.UGRAvg, report.Stats.PowerDensityAvg)
	fmt.Fprintf(&b, "Compliance rate %.0f%%, data quality %.0f%%\n\n",
		report.Stats.ComplianceRate*100, report.Stats.DataQuality*100)

	for _, room := range report.Rooms {
		fmt.Fprintf(&b, "- %s (%s, %.1f m²)", room.Name, room.Type, room.Area)
		if room.IlluminanceAvg != nil {
			fmt.Fprintf(&b, " %.0f lux", *room.IlluminanceAvg)
		}
		if len(room.Compliance) > 0 {
			fmt.Fprintf(&b, " [%.0f%% compliant]", room.ComplianceRate*100)
		}
		b.WriteByte('\n')
	}

	if len(report.CriticalIssues) > 0 {
		fmt.Fprintf(&b, "\nCritical issues:\n")
		for _, issue := range report.CriticalIssues {
			fmt.Fprintf(&b, "  * %s\n", issue)
		}
	}
	if len(report.Recommendations) > 0 {
		fmt.Fprintf(&b, "\nRecommendations:\n")
		for _, rec := range report.Recommendations {
			fmt.Fprintf(&b, "  * %s\n", rec)
		}
	}
	return b.String()
}

func fmtOpt(v *float64, format string) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf(format, *v)
}

func writeOpt(write func(int, any), col int, v *float64) {
	if v != nil {
		write(col, *v)
	}
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

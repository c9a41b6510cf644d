package analyze

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/luxaudit/luxaudit/constants"
	"github.com/luxaudit/luxaudit/internal/common"
	"github.com/luxaudit/luxaudit/internal/facts"
	"github.com/luxaudit/luxaudit/internal/llm"
	"github.com/luxaudit/luxaudit/internal/pdfextract"
	"github.com/luxaudit/luxaudit/internal/standards"
	"github.com/luxaudit/luxaudit/internal/tables"
)

// Analyzer runs the full pipeline for one document. The metadata extractor
// is optional; fast mode degrades to regex heuristics without it and
// enhanced mode refuses to run. The lattice extractor is optional too: when
// the raster binaries are absent, table mining runs on text-layer grids only.
type Analyzer struct {
	extractor *pdfextract.Extractor
	facts     *facts.Extractor
	checker   *standards.Checker
	lattice   *tables.LatticeExtractor
	metadata  llm.MetadataExtractor
	log       *slog.Logger
}

func New(extractor *pdfextract.Extractor, factsEx *facts.Extractor, checker *standards.Checker, lattice *tables.LatticeExtractor, metadata llm.MetadataExtractor, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		extractor: extractor,
		facts:     factsEx,
		checker:   checker,
		lattice:   lattice,
		metadata:  metadata,
		log:       logger,
	}
}

// Analyze extracts, mines and compliance-checks a single PDF.
func (a *Analyzer) Analyze(ctx context.Context, path string, mode constants.AnalysisMode, standard standards.StandardType) (*Report, error) {
	start := time.Now()

	result, err := a.extractor.Extract(ctx, path)
	if err != nil {
		return nil, common.NewAppError("extract", "document extraction failed", err)
	}

	tableText := a.tableText(ctx, path, result.Tables)
	rooms := a.facts.ExtractRooms(result.Text, tableText)

	report := &Report{
		SourceFile:       filepath.Base(path),
		Mode:             mode,
		ReportType:       IdentifyReportType(result.Text),
		Standard:         standard,
		ExtractionMethod: result.Method,
		ExtractionScore:  result.Score,
		ProcessedAt:      start.UTC(),
	}

	switch mode {
	case constants.ModeEnhanced:
		if err := a.applyEnhanced(ctx, result.Text, path, report, &rooms); err != nil {
			return nil, err
		}
	case constants.ModeFast:
		a.applyFast(ctx, result.Text, path, report)
	default:
		report.ProjectName = facts.ProjectName(result.Text, path)
	}

	report.Rooms = a.checkRooms(rooms, standard)
	report.TotalRooms = len(report.Rooms)
	for _, r := range report.Rooms {
		report.TotalArea += r.Area
	}
	report.Stats = computeStats(report.Rooms)
	report.Confidence = meanConfidence(report.Rooms)
	report.Recommendations = Recommendations(report)
	report.CriticalIssues = CriticalIssues(report)
	report.Duration = time.Since(start)

	attrs := []any{
		slog.String("file", report.SourceFile),
		slog.String("mode", string(mode)),
		slog.String("method", result.Method),
		slog.Int("rooms", report.TotalRooms),
		slog.Float64("compliance_rate", report.Stats.ComplianceRate),
		slog.Duration("duration", report.Duration),
	}
	if runID := common.RunIDFromContext(ctx); runID != "" {
		attrs = append(attrs, slog.String("run_id", runID))
	}
	a.log.Info("analysis complete", attrs...)

	return report, nil
}

// applyEnhanced delegates structured extraction to the model. Missing
// credentials and parse failures are hard errors in this mode.
func (a *Analyzer) applyEnhanced(ctx context.Context, text, path string, report *Report, rooms *[]facts.RoomRecord) error {
	if a.metadata == nil {
		return common.NewAppError("llm", "enhanced mode requires an API key", common.ErrMissingAPIKey)
	}

	extraction, _, err := a.metadata.ExtractStructured(ctx, llm.ExtractRequest{
		Text:         text,
		FilenameHint: filepath.Base(path),
	})
	if err != nil {
		return common.NewAppError("llm", "structured extraction failed", err)
	}

	report.Metadata = &extraction.ProjectMetadata
	report.Companies = &extraction.CompanyInfo
	report.Luminaires = extraction.LuminaireDetails
	report.ProjectName = extraction.ProjectMetadata.ProjectName
	if report.ProjectName == "" {
		report.ProjectName = facts.ProjectName(text, path)
	}

	// Model-reported rooms replace the regex rooms when present; the regex
	// result stays as a fallback so the report is never empty.
	if len(extraction.RoomDetails) > 0 {
		*rooms = roomsFromDetails(extraction.RoomDetails, extraction.Confidence)
	}
	return nil
}

// applyFast resolves company names with the short model prompt when
// configured, else the brand-keyword heuristic. Failures fall back, never
// abort.
func (a *Analyzer) applyFast(ctx context.Context, text, path string, report *Report) {
	report.ProjectName = facts.ProjectName(text, path)

	if a.metadata != nil {
		companies, err := a.metadata.ExtractCompanies(ctx, llm.ExtractRequest{
			Text:         text,
			FilenameHint: filepath.Base(path),
		})
		if err == nil {
			report.Companies = &companies
			return
		}
		a.log.Warn("company extraction failed, using heuristic", slog.Any("error", err))
	}
	if name := facts.CompanyHeuristic(text); name != "" {
		report.Companies = &llm.CompanyInfo{LuminaireManufacturer: name}
	}
}

func (a *Analyzer) checkRooms(rooms []facts.RoomRecord, standard standards.StandardType) []Room {
	out := make([]Room, 0, len(rooms))
	for _, rec := range rooms {
		results := a.checker.Check(complianceValues(&rec), rec.Type, standard)
		rate := 0.0
		if len(results) > 0 {
			compliant := 0
			for _, res := range results {
				if res.IsCompliant {
					compliant++
				}
			}
			rate = float64(compliant) / float64(len(results))
		}
		out = append(out, Room{RoomRecord: rec, Compliance: results, ComplianceRate: rate})
	}
	return out
}

// complianceKeys projects canonical parameter names onto the names the
// requirement tables use. Parameters without a key (min/max illuminance,
// area, efficacy) carry no threshold and are skipped.
var complianceKeys = map[constants.Parameter]string{
	constants.ParamIlluminanceAvg:   "illuminance",
	constants.ParamUniformity:       "uniformity",
	constants.ParamUGR:              "ugr",
	constants.ParamPowerDensity:     "power_density",
	constants.ParamColorTemperature: "color_temperature",
	constants.ParamCRI:              "cri",
}

func complianceValues(r *facts.RoomRecord) map[string]float64 {
	out := make(map[string]float64)
	for param, v := range r.Values() {
		if key, ok := complianceKeys[param]; ok {
			out[key] = v
		}
	}
	return out
}

func roomsFromDetails(details []llm.RoomDetail, confidence float64) []facts.RoomRecord {
	if confidence <= 0 {
		confidence = 0.9
	}
	out := make([]facts.RoomRecord, 0, len(details))
	for _, d := range details {
		roomType, ok := constants.ParseRoomType(d.RoomType)
		if !ok {
			roomType = constants.ClassifyRoom(d.RoomName, d.RoomType)
		}
		rec := facts.RoomRecord{
			Name:            d.RoomName,
			Type:            roomType,
			Area:            d.Area,
			IlluminanceAvg:  d.IlluminanceAvg,
			IlluminanceMin:  d.IlluminanceMin,
			IlluminanceMax:  d.IlluminanceMax,
			Uniformity:      d.Uniformity,
			UGR:             d.UGR,
			PowerDensity:    d.PowerDensity,
			ConfidenceScore: confidence,
		}
		rec.DataCompleteness = rec.Completeness()
		out = append(out, rec)
	}
	return out
}

func meanConfidence(rooms []Room) float64 {
	if len(rooms) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rooms {
		sum += r.ConfidenceScore
	}
	return sum / float64(len(rooms))
}

// tableText merges text-layer grids with lattice candidates when the raster
// binaries are present, collapses duplicates across methods, and flattens
// the survivors into the text the fact extractor's table tiers consume.
func (a *Analyzer) tableText(ctx context.Context, path string, grids [][][]string) string {
	cands := make([]tables.Candidate, 0, len(grids))
	for _, g := range grids {
		cands = append(cands, tables.NewCandidate(g, 0, tables.MethodStream))
	}
	if a.lattice != nil && a.lattice.Available() {
		latticeCands, err := a.lattice.Extract(ctx, path)
		if err != nil {
			a.log.Warn("lattice table extraction failed", slog.Any("error", err))
		} else {
			cands = append(cands, latticeCands...)
		}
	}
	return mergeTableText(tables.Dedup(cands, 0))
}

// mergeTableText flattens candidates best-first so higher-fidelity rows are
// matched earliest by the fallback tiers.
func mergeTableText(cands []tables.Candidate) string {
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Rank() > cands[j].Rank() })
	var b strings.Builder
	for _, c := range cands {
		b.WriteString(c.Flatten())
		b.WriteByte('\n')
	}
	return b.String()
}

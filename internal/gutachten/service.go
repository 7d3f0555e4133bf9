package gutachten

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNoExtractableContent reports a PDF with neither tables nor text. It is
// the one condition the presentation layer renders as an explicit error
// instead of degrading further.
var ErrNoExtractableContent = errors.New("no extractable content found in PDF")

// ProcessRequest describes one analysis run.
type ProcessRequest struct {
	// Path is the filesystem path of the PDF to analyze.
	Path string

	// PDFID names the export files; defaults to the file's base name.
	PDFID string

	// Export enables writing validated tables as CSV artifacts.
	Export bool
}

// Service orchestrates the full pipeline: table extraction with fallback,
// validation, text-section recovery, entity extraction, reconciliation
// against the code store and the freedom analysis.
type Service struct {
	maxFileSize int64
	validator   *TableValidator
	analyzer    *FreedomAnalyzer
	reconciler  *Reconciler
	store       CodeStore
	storage     *ExportStorage

	// newRunner builds a fresh fallback chain per request so that attempt
	// counters never leak between runs.
	newRunner func() *StrategyRunner
}

// NewService wires the pipeline components. storage may be nil when exports
// are disabled.
func NewService(maxFileSize int64, profile ValidationProfile, store CodeStore, storage *ExportStorage) *Service {
	return &Service{
		maxFileSize: maxFileSize,
		validator:   NewTableValidator(profile),
		analyzer:    NewFreedomAnalyzer(),
		reconciler:  NewReconciler(store),
		store:       store,
		storage:     storage,
		newRunner:   DefaultStrategyRunner,
	}
}

// ProcessFile runs the whole pipeline over one PDF.
//
// When persistence fails after successful extraction, the returned result is
// still complete (codes, assessment, tables) and the error reports the
// failed write; callers should surface both.
func (s *Service) ProcessFile(req ProcessRequest) (*ExtractResult, error) {
	if err := s.validateInput(req.Path); err != nil {
		return nil, err
	}

	ctx, err := OpenDocument(req.Path)
	if err != nil {
		return nil, err
	}
	defer ctx.Close()

	runner := s.newRunner()
	tables, strategy, err := runner.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("table extraction failed: %w", err)
	}
	if len(tables) == 0 {
		return nil, ErrNoExtractableContent
	}

	result := &ExtractResult{
		Path:     req.Path,
		Strategy: strategy,
		Tables:   s.validator.Filter(tables),
	}
	for name, strategyErr := range runner.Errors {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("strategy %s failed: %v", name, strategyErr))
	}

	textDescriptions := s.extractTextDescriptions(ctx, result)
	result.Codes = FindConditionCodes(result.Tables)
	result.VehicleInfo, result.WheelTireInfo = s.extractEntities(result.Tables)

	entries, reconcileErr := s.reconciler.Reconcile(result.Codes, textDescriptions)
	result.CodeEntries = entries

	descriptions := DescriptionMap(result.Codes, textDescriptions)
	result.Assessment = s.analyzer.Analyze(result.Codes, descriptions, result.VehicleInfo, result.WheelTireInfo)

	if req.Export && s.storage != nil {
		s.exportTables(req, result)
	}

	// surfaced last: extraction succeeded, persistence failed
	return result, reconcileErr
}

// extractTextDescriptions runs the text-section state machine over the
// document, filtered by the codes currently known to the store. A store
// read failure degrades to an empty description map; descriptions then
// fall back to the static dictionary during reconciliation.
func (s *Service) extractTextDescriptions(ctx *ExtractionContext, result *ExtractResult) map[string]string {
	known, err := s.store.GetAll()
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("code store unavailable, text descriptions skipped: %v", err))
		return map[string]string{}
	}

	codes := make([]string, 0, len(known))
	for _, entry := range known {
		codes = append(codes, entry.Code)
	}
	return NewTextSectionExtractor(codes).Extract(ctx.AllLines())
}

// extractEntities picks vehicle info from the first table that yields any,
// and merges wheel/tire info across tables, first finding per key.
func (s *Service) extractEntities(tables []RawTable) (VehicleInfo, WheelTireInfo) {
	vehicle := make(VehicleInfo)
	wheelTire := make(WheelTireInfo)

	for _, table := range tables {
		if len(vehicle) == 0 {
			vehicle = ExtractVehicleInfo(table)
		}
		for key, value := range ExtractWheelTireInfo(table) {
			if _, done := wheelTire[key]; !done {
				wheelTire[key] = value
			}
		}
	}
	return vehicle, wheelTire
}

func (s *Service) exportTables(req ProcessRequest, result *ExtractResult) {
	pdfID := req.PDFID
	if pdfID == "" {
		pdfID = strings.TrimSuffix(filepath.Base(req.Path), filepath.Ext(req.Path))
	}

	paths, err := ExportTables(result.Tables, s.storage.BaseDir(), pdfID)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("table export failed: %v", err))
	}
	for _, path := range paths {
		s.storage.Track(path)
	}
	result.ExportedFiles = paths
}

// validateInput performs the boundary checks on the input file: existence,
// extension, size limit and PDF well-formedness.
func (s *Service) validateInput(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() > s.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), s.maxFileSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if _, err := api.ReadContext(f, conf); err != nil {
		return fmt.Errorf("not a readable PDF: %w", err)
	}
	return nil
}

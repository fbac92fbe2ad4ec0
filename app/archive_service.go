package app

import (
	"context"
	"log/slog"
	"time"

	"digsite/adapters/excel"
	"digsite/adapters/textfile"
	"digsite/adapters/tsv"
	"digsite/domain/records"
	"digsite/internal/errors"
	"digsite/internal/journal"
	"digsite/ports"

	"golang.org/x/sync/errgroup"
)

// ArchiveService loads expedition sources and extracts journal tokens
type ArchiveService struct {
	artifactPort ports.TableReaderPort
	locationPort ports.TableReaderPort
	journalPort  ports.JournalReaderPort
}

// SurveyPaths names the three sources of one survey
type SurveyPaths struct {
	ArtifactsFile string
	LocationsFile string
	JournalFile   string
}

// TableSection is the outcome of loading one table
type TableSection struct {
	Path    string             `json:"path"`
	Missing bool               `json:"missing"`
	Records *records.RecordSet `json:"-"`
}

// JournalSection is the outcome of reading and scanning the journal
type JournalSection struct {
	Path    string              `json:"path"`
	Missing bool                `json:"missing"`
	Tokens  *journal.Extraction `json:"tokens,omitempty"`
}

// SurveyReport collects every section of a survey
type SurveyReport struct {
	Artifacts TableSection   `json:"artifacts"`
	Locations TableSection   `json:"locations"`
	Journal   JournalSection `json:"journal"`
	RuntimeMs int64          `json:"runtime_ms"`
}

// NewArchiveService creates an archive service from its ports
func NewArchiveService(artifactPort, locationPort ports.TableReaderPort, journalPort ports.JournalReaderPort) *ArchiveService {
	return &ArchiveService{
		artifactPort: artifactPort,
		locationPort: locationPort,
		journalPort:  journalPort,
	}
}

// NewDefaultArchiveService wires the xlsx, tsv and text file adapters
func NewDefaultArchiveService() *ArchiveService {
	return NewArchiveService(excel.ArtifactLoader{}, tsv.LocationLoader{}, textfile.JournalReader{})
}

// LoadArtifactData reads the artifact sheet at path
func (s *ArchiveService) LoadArtifactData(path string) (*records.RecordSet, error) {
	return s.artifactPort.Load(path)
}

// LoadLocationNotes reads the tab-delimited location table at path
func (s *ArchiveService) LoadLocationNotes(path string) (*records.RecordSet, error) {
	return s.locationPort.Load(path)
}

// ReadJournal returns the journal text at path
func (s *ArchiveService) ReadJournal(path string) (string, error) {
	return s.journalPort.Read(path)
}

// ExtractJournalDates returns the MM/DD/YYYY dates found in text
func (s *ArchiveService) ExtractJournalDates(text string) []string {
	return journal.ExtractJournalDates(text)
}

// ExtractSecretCodes returns the AZMAR-XXX codes found in text
func (s *ArchiveService) ExtractSecretCodes(text string) []string {
	return journal.ExtractSecretCodes(text)
}

// Survey loads all three sources concurrently. A missing file marks its section
// as Missing; any other failure stops the survey and is returned.
func (s *ArchiveService) Survey(ctx context.Context, paths SurveyPaths) (*SurveyReport, error) {
	startTime := time.Now()
	report := &SurveyReport{
		Artifacts: TableSection{Path: paths.ArtifactsFile},
		Locations: TableSection{Path: paths.LocationsFile},
		Journal:   JournalSection{Path: paths.JournalFile},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.loadTable(gctx, "artifacts", s.artifactPort, &report.Artifacts)
	})
	g.Go(func() error {
		return s.loadTable(gctx, "locations", s.locationPort, &report.Locations)
	})
	g.Go(func() error {
		return s.scanJournal(gctx, &report.Journal)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.RuntimeMs = time.Since(startTime).Milliseconds()
	slog.Debug("survey complete",
		"artifacts_missing", report.Artifacts.Missing,
		"locations_missing", report.Locations.Missing,
		"journal_missing", report.Journal.Missing,
		"runtime_ms", report.RuntimeMs)
	return report, nil
}

func (s *ArchiveService) loadTable(ctx context.Context, name string, port ports.TableReaderPort, section *TableSection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rs, err := port.Load(section.Path)
	if errors.IsFileNotFound(err) {
		slog.Warn("source missing", "source", name, "path", section.Path)
		section.Missing = true
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", name)
	}
	section.Records = rs
	return nil
}

func (s *ArchiveService) scanJournal(ctx context.Context, section *JournalSection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text, err := s.journalPort.Read(section.Path)
	if errors.IsFileNotFound(err) {
		slog.Warn("source missing", "source", "journal", "path", section.Path)
		section.Missing = true
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to read journal")
	}
	tokens := journal.Extract(text)
	section.Tokens = &tokens
	return nil
}

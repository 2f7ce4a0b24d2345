package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "winnow.dev/pkg/winnow/internal/model"
)

// ReportStore persists and loads concise test-set run reports.
type ReportStore interface {
	// SaveReport writes the report as YAML under dir, returning the path
	// of the written file.
	SaveReport(dir m.Path, report m.RunReport) (m.Path, error)

	// LoadReport reads a previously saved report file.
	LoadReport(path m.Path) (m.RunReport, error)
}

// YAMLReportStore is the filesystem-backed ReportStore.
type YAMLReportStore struct{}

// NewYAMLReportStore constructs a YAMLReportStore.
func NewYAMLReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReport implements ReportStore.
func (s *YAMLReportStore) SaveReport(dir m.Path, report m.RunReport) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	content, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	path := m.Path(filepath.Join(string(dir), "report-"+report.RunID+".yaml"))

	if err := os.WriteFile(string(path), content, 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return path, nil
}

// LoadReport implements ReportStore.
func (s *YAMLReportStore) LoadReport(path m.Path) (m.RunReport, error) {
	content, err := os.ReadFile(string(path))
	if err != nil {
		return m.RunReport{}, fmt.Errorf("read report: %w", err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(content, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("unmarshal report: %w", err)
	}

	return report, nil
}

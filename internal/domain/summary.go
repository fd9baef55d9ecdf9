package domain

import (
	m "mockhoist.dev/pkg/mockhoist/internal/model"
	"mockhoist.dev/pkg/mockhoist/pkg"
)

func summaryFromReports(reports pkg.FileSpill[m.Report]) (m.Summary, error) {
	summary := m.NewSummary()

	err := reports.Range(func(_ uint64, report m.Report) error {
		summary.Add(report)
		return nil
	})
	if err != nil {
		return m.Summary{}, err
	}

	return summary, nil
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mockhoist.dev/pkg/mockhoist/internal/adapter"
	m "mockhoist.dev/pkg/mockhoist/internal/model"
	"mockhoist.dev/pkg/mockhoist/pkg"
)

// MockReportStore is a mock implementation of adapter.ReportStore.
type MockReportStore struct {
	mock.Mock
}

// NewMockReportStore creates a MockReportStore whose expectations are
// asserted on cleanup.
func NewMockReportStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReportStore {
	mockStore := &MockReportStore{}
	mockStore.Mock.Test(t)

	t.Cleanup(func() { mockStore.AssertExpectations(t) })

	return mockStore
}

func (_m *MockReportStore) SaveReports(ctx context.Context, path m.Path, reports pkg.FileSpill[m.Report]) error {
	ret := _m.Called(ctx, path, reports)

	return ret.Error(0)
}

func (_m *MockReportStore) LoadReports(ctx context.Context, path m.Path) ([]m.Report, error) {
	ret := _m.Called(ctx, path)

	var reports []m.Report
	if v := ret.Get(0); v != nil {
		reports = v.([]m.Report)
	}

	return reports, ret.Error(1)
}

func (_m *MockReportStore) CheckUpdates(ctx context.Context, path m.Path, sources []m.Source) ([]m.Source, error) {
	ret := _m.Called(ctx, path, sources)

	var changed []m.Source
	if v := ret.Get(0); v != nil {
		changed = v.([]m.Source)
	}

	return changed, ret.Error(1)
}

func (_m *MockReportStore) CleanReports(ctx context.Context, path m.Path, sources []m.Source) error {
	ret := _m.Called(ctx, path, sources)

	return ret.Error(0)
}

func (_m *MockReportStore) MergeReports(ctx context.Context, path m.Path) error {
	ret := _m.Called(ctx, path)

	return ret.Error(0)
}

var _ adapter.ReportStore = (*MockReportStore)(nil)

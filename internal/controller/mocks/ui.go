// Package mocks provides testify mocks of the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mockhoist.dev/pkg/mockhoist/internal/controller"
	m "mockhoist.dev/pkg/mockhoist/internal/model"
)

// MockUI is a mock implementation of controller.UI.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a MockUI whose expectations are asserted on cleanup.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mockUI := &MockUI{}
	mockUI.Mock.Test(t)

	t.Cleanup(func() { mockUI.AssertExpectations(t) })

	return mockUI
}

func (_m *MockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	args := make([]interface{}, 0, len(options)+1)
	args = append(args, ctx)

	for _, opt := range options {
		args = append(args, opt)
	}

	ret := _m.Called(args...)

	return ret.Error(0)
}

func (_m *MockUI) Close(ctx context.Context) {
	_m.Called(ctx)
}

func (_m *MockUI) Wait(ctx context.Context) {
	_m.Called(ctx)
}

func (_m *MockUI) DisplayRunInfo(ctx context.Context, info controller.RunInfo) {
	_m.Called(ctx, info)
}

func (_m *MockUI) DisplayReport(ctx context.Context, report m.Report) {
	_m.Called(ctx, report)
}

func (_m *MockUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	_m.Called(ctx, summary)
}

func (_m *MockUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	ret := _m.Called(ctx, reports)

	return ret.Error(0)
}

var _ controller.UI = (*MockUI)(nil)

// Package mocks provides testify mocks of the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mockhoist.dev/pkg/mockhoist/internal/domain"
	m "mockhoist.dev/pkg/mockhoist/internal/model"
)

// MockWorkflow is a mock implementation of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a MockWorkflow whose expectations are asserted on
// cleanup.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mockWorkflow := &MockWorkflow{}
	mockWorkflow.Mock.Test(t)

	t.Cleanup(func() { mockWorkflow.AssertExpectations(t) })

	return mockWorkflow
}

func (_m *MockWorkflow) Run(ctx context.Context, args domain.RunArgs) error {
	ret := _m.Called(ctx, args)

	return ret.Error(0)
}

func (_m *MockWorkflow) Check(ctx context.Context, args domain.CheckArgs) error {
	ret := _m.Called(ctx, args)

	return ret.Error(0)
}

func (_m *MockWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	ret := _m.Called(ctx, args)

	return ret.Error(0)
}

func (_m *MockWorkflow) Merge(ctx context.Context, args domain.MergeArgs) error {
	ret := _m.Called(ctx, args)

	return ret.Error(0)
}

var _ domain.Workflow = (*MockWorkflow)(nil)

// MockTransformer is a mock implementation of domain.Transformer.
type MockTransformer struct {
	mock.Mock
}

// NewMockTransformer creates a MockTransformer whose expectations are
// asserted on cleanup.
func NewMockTransformer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransformer {
	mockTransformer := &MockTransformer{}
	mockTransformer.Mock.Test(t)

	t.Cleanup(func() { mockTransformer.AssertExpectations(t) })

	return mockTransformer
}

func (_m *MockTransformer) Transform(ctx context.Context, source m.Source) (m.Report, []byte, error) {
	ret := _m.Called(ctx, source)

	var out []byte
	if v := ret.Get(1); v != nil {
		out = v.([]byte)
	}

	return ret.Get(0).(m.Report), out, ret.Error(2)
}

var _ domain.Transformer = (*MockTransformer)(nil)

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mockhoist.dev/pkg/mockhoist/internal/adapter"
	"mockhoist.dev/pkg/mockhoist/internal/jsast"
)

// MockJSFileAdapter is a mock implementation of adapter.JSFileAdapter.
type MockJSFileAdapter struct {
	mock.Mock
}

// NewMockJSFileAdapter creates a MockJSFileAdapter whose expectations are
// asserted on cleanup.
func NewMockJSFileAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockJSFileAdapter {
	mockAdapter := &MockJSFileAdapter{}
	mockAdapter.Mock.Test(t)

	t.Cleanup(func() { mockAdapter.AssertExpectations(t) })

	return mockAdapter
}

func (_m *MockJSFileAdapter) Parse(ctx context.Context, filename string, src []byte) (*jsast.Program, error) {
	ret := _m.Called(ctx, filename, src)

	var prog *jsast.Program
	if v := ret.Get(0); v != nil {
		prog = v.(*jsast.Program)
	}

	return prog, ret.Error(1)
}

func (_m *MockJSFileAdapter) Print(prog *jsast.Program) ([]byte, error) {
	ret := _m.Called(prog)

	var out []byte
	if v := ret.Get(0); v != nil {
		out = v.([]byte)
	}

	return out, ret.Error(1)
}

func (_m *MockJSFileAdapter) CodeFrame(src []byte, line, col int) string {
	ret := _m.Called(src, line, col)

	return ret.String(0)
}

var _ adapter.JSFileAdapter = (*MockJSFileAdapter)(nil)

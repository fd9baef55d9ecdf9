// Package mocks provides testify mocks of the adapter interfaces.
package mocks

import (
	"context"
	"os"

	"github.com/stretchr/testify/mock"

	"mockhoist.dev/pkg/mockhoist/internal/adapter"
	m "mockhoist.dev/pkg/mockhoist/internal/model"
)

// MockSourceFSAdapter is a mock implementation of adapter.SourceFSAdapter.
type MockSourceFSAdapter struct {
	mock.Mock
}

// NewMockSourceFSAdapter creates a MockSourceFSAdapter whose expectations
// are asserted on cleanup.
func NewMockSourceFSAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSourceFSAdapter {
	mockAdapter := &MockSourceFSAdapter{}
	mockAdapter.Mock.Test(t)

	t.Cleanup(func() { mockAdapter.AssertExpectations(t) })

	return mockAdapter
}

func (_m *MockSourceFSAdapter) Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error) {
	ret := _m.Called(ctx, paths, exclude)

	var sources []m.Source
	if v := ret.Get(0); v != nil {
		sources = v.([]m.Source)
	}

	return sources, ret.Error(1)
}

func (_m *MockSourceFSAdapter) Walk(root m.Path, recursive bool, fn adapter.FilepathWalkFunc) error {
	ret := _m.Called(root, recursive, fn)

	return ret.Error(0)
}

func (_m *MockSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	ret := _m.Called(path)

	var content []byte
	if v := ret.Get(0); v != nil {
		content = v.([]byte)
	}

	return content, ret.Error(1)
}

func (_m *MockSourceFSAdapter) WriteFile(path m.Path, content []byte) error {
	ret := _m.Called(path, content)

	return ret.Error(0)
}

func (_m *MockSourceFSAdapter) HashFile(path m.Path) (string, error) {
	ret := _m.Called(path)

	return ret.String(0), ret.Error(1)
}

func (_m *MockSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	ret := _m.Called(path)

	var info os.FileInfo
	if v := ret.Get(0); v != nil {
		info = v.(os.FileInfo)
	}

	return info, ret.Error(1)
}

func (_m *MockSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	ret := _m.Called(base, target)

	return ret.Get(0).(m.Path), ret.Error(1)
}

var _ adapter.SourceFSAdapter = (*MockSourceFSAdapter)(nil)

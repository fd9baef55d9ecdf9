// Package model defines the data structures shared by the mockhoist layers.
package model

// Path represents a file system path.
type Path string

// File represents a source code file.
type File struct {
	// FullPath is the path the file was discovered at.
	FullPath Path `yaml:"full_path"`
	// ShortPath is FullPath relative to the working directory when possible.
	ShortPath Path `yaml:"short_path"`
	// Hash is the hex SHA-256 of the file contents at discovery time.
	Hash string `yaml:"hash"`
}

// Source is one test file selected for transformation.
type Source struct {
	Origin *File `yaml:"origin"`
}

// Key identifies a source across runs.
func (s Source) Key() string {
	if s.Origin == nil {
		return ""
	}

	return string(s.Origin.FullPath)
}

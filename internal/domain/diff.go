package domain

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// unifiedDiff renders the change from original to rewritten with three
// lines of context.
func unifiedDiff(path string, original, rewritten []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(rewritten)),
		FromFile: path,
		ToFile:   path + " (hoisted)",
		Context:  3,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}

	return text, nil
}

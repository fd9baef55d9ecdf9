package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	reports := []Report{
		{Status: StatusTransformed, Rewritten: 2, HoistedCalls: 2, HoistedVars: 1},
		{Status: StatusTransformed, Rewritten: 1, HoistedCalls: 1},
		{Status: StatusUnchanged},
		{Status: StatusRejected},
	}

	s := Summarize(reports)

	assert.Equal(t, 4, s.Files)
	assert.Equal(t, 2, s.ByStatus[StatusTransformed])
	assert.Equal(t, 1, s.ByStatus[StatusUnchanged])
	assert.Equal(t, 1, s.ByStatus[StatusRejected])
	assert.Equal(t, 0, s.ByStatus[StatusFailed])
	assert.Equal(t, 3, s.Rewritten)
	assert.Equal(t, 3, s.HoistedCalls)
	assert.Equal(t, 1, s.HoistedVars)
	assert.True(t, s.Failed())
}

func TestSummary_AddOnZeroValue(t *testing.T) {
	var s Summary
	s.Add(Report{Status: StatusFailed})

	assert.Equal(t, 1, s.Files)
	assert.True(t, s.Failed())
}

func TestSummary_FailedIsFalseWithoutRejections(t *testing.T) {
	s := Summarize([]Report{{Status: StatusUnchanged}, {Status: StatusTransformed}})
	assert.False(t, s.Failed())
}

func TestSource_Key(t *testing.T) {
	assert.Empty(t, Source{}.Key())
	assert.Equal(t, "a/b.test.js", Source{Origin: &File{FullPath: "a/b.test.js"}}.Key())
}

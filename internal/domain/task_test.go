package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOnly(t *testing.T) {
	in := time.Date(2025, 6, 15, 23, 45, 12, 999, time.UTC)
	got := DateOnly(in)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestDateOnly_NonUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	in := time.Date(2025, 6, 15, 2, 0, 0, 0, loc) // 2025-06-14 17:00 UTC
	got := DateOnly(in)
	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), got)
}

func TestTaskIsOrphan(t *testing.T) {
	iter := "iter-1"
	parent := "task-0"
	cases := []struct {
		name     string
		task     Task
		topLevel bool
		orphan   bool
	}{
		{"no parent, no iteration", Task{}, true, true},
		{"no parent, in iteration", Task{IterationID: &iter}, true, false},
		{"parented", Task{ParentID: &parent}, false, false},
		{"parented, in iteration", Task{ParentID: &parent, IterationID: &iter}, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.topLevel, tc.task.IsTopLevel())
			assert.Equal(t, tc.orphan, tc.task.IsOrphan())
		})
	}
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, "", CoalesceStr("", ""))
}

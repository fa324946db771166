package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixge/go-jsonparse-bench/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadReports(t *testing.T) {
	dir := t.TempDir()
	t0 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, sub := range []string{"a", "b"} {
		r := internal.NewReport()
		r.ID = sub
		r.Start = t0.Add(time.Duration(i) * time.Minute)
		r.Duration = 90 * time.Second
		path := filepath.Join(dir, sub, internal.ReportFile)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, r.WriteFile(path))
	}

	start, end, reports, err := readReports(dir)
	require.NoError(t, err)
	assert.Len(t, reports, 2)
	assert.True(t, start.Equal(t0), start)
	assert.True(t, end.Equal(t0.Add(150*time.Second)), end)
}

package internal

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportAddDuplicate(t *testing.T) {
	r := NewReport()
	require.NoError(t, r.add(Measurement{Name: "std"}))
	require.Error(t, r.add(Measurement{Name: "std"}))
	assert.Len(t, r.Measurements, 1)
}

func TestReadReports(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"a", "b/c"} {
		path := filepath.Join(dir, sub, ReportFile)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		r := testReport()
		r.ID = sub
		require.NoError(t, r.WriteFile(path))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: ["), 0644))

	var ids []string
	err := ReadReports(dir, func(path string, r *Report) error {
		ids = append(ids, r.ID)
		assert.Len(t, r.Measurements, 3)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(ids)
	assert.Equal(t, []string{"a", "b/c"}, ids)
}

package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_RecordsEntries(t *testing.T) {
	m := NewMockLogger()
	m.Debug("progress", F(FieldLine, 2))
	m.Info("done")
	m.Warn("skipped")
	m.Error("failed")
	m.Fatalf("fatal %d", 1)

	require.Len(t, m.GetEntries(), 5)
	assert.True(t, m.HasEntry("INFO", "done"))
	assert.True(t, m.HasEntry("FATAL", "fatal 1"))
	assert.Len(t, m.GetEntriesByLevel("WARN"), 1)
}

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	m := NewMockLogger()
	child := m.WithField(FieldInputFile, "export.csv").WithError(errors.New("boom"))
	child.Warn("Skipping malformed row", F(FieldLine, 4))

	entries := m.GetEntriesByLevel("WARN")
	require.Len(t, entries, 1)
	assert.EqualError(t, entries[0].Error, "boom")
	assert.Equal(t, []Field{F(FieldInputFile, "export.csv"), F(FieldLine, 4)}, entries[0].Fields)
}

func TestMockLogger_ZeroValueAndClear(t *testing.T) {
	var m MockLogger
	assert.Empty(t, m.GetEntries())

	m.Info("hello")
	assert.Len(t, m.GetEntries(), 1)

	m.Clear()
	assert.Empty(t, m.GetEntries())
}

package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Weekly Schedule",
		Headers: []string{"Day", "Task", "Start"},
		Rows: []map[string]string{
			{"Day": "Monday", "Task": "Morning Meeting", "Start": "09:00"},
			{"Day": "Monday", "Task": "Project Work, phase 2", "Start": "09:45"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Day,Task,Start\nMonday,Morning Meeting,09:00\nMonday,\"Project Work, phase 2\",09:45\n", string(out))
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()
	out, err := exporter.Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "application/pdf", exporter.ContentType())
}

func TestExportersRequireHeaders(t *testing.T) {
	for _, exporter := range []Exporter{NewCSVExporter(), NewPDFExporter()} {
		_, err := exporter.Render(Dataset{})
		assert.Error(t, err, exporter.Extension())
	}
}

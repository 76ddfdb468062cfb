package export

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	ds := Dataset{Headers: []string{"Day", "Start", "End", "Subject"}}
	ds.Add("Monday", "8:00 AM", "8:45 AM", "Math, Algebra")
	ds.Add("Monday", "8:45 AM", "8:55 AM")
	return ds
}

func TestCSVRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Day,Start,End,Subject\nMonday,8:00 AM,8:45 AM,\"Math, Algebra\"\nMonday,8:45 AM,8:55 AM,\n", string(out))
}

func TestCSVRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	ds := sampleDataset()
	for i := 0; i < 80; i++ {
		ds.Add("Tuesday", "9:00 AM", "9:45 AM", fmt.Sprintf("Subject %d", i))
	}
	out, err := NewPDFExporter().Render(ds, "Weekly Timetable")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	_, err = NewPDFExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}

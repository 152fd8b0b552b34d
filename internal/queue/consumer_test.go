package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the duration of the test; t.Chdir requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(old))
	})
}

func TestHandleMessageAppendsToLog(t *testing.T) {
	chdir(t, t.TempDir())

	ev := MeetingLifecycleEvent{
		Event:       EventMeetingScheduled,
		MeetingID:   "m-1",
		OperatorID:  "op-1",
		CitizenPin:  "2DNXYD8",
		ScheduledAt: "2025-06-10T13:00:00Z",
		OccurredAt:  "2025-06-10T12:00:00Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	require.NoError(t, handleMessage(body))
	require.NoError(t, handleMessage(body))

	raw, err := os.ReadFile(filepath.Join("logs", "meetings.log"))
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, EventMeetingScheduled)
	assert.Contains(t, content, "meeting_id=m-1")
	assert.Contains(t, content, "citizen_pin=2DNXYD8")
	assert.Equal(t, 2, strings.Count(content, "\n"), "each event is one line")
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	chdir(t, t.TempDir())
	assert.Error(t, handleMessage([]byte("not json")))
}

package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/forceteam/internal/model"
	"github.com/mcoot/forceteam/internal/testutil"
)

func TestFanoutDeliversInOrder(t *testing.T) {
	var got []string
	f := Fanout{
		Func(func(r model.Report) { got = append(got, "a:"+string(r.Kind)) }),
		nil,
		Func(func(r model.Report) { got = append(got, "b:"+string(r.Kind)) }),
	}

	f.Report(model.Report{Kind: model.ReportRosterSet})

	assert.Equal(t, []string{"a:roster_set", "b:roster_set"}, got)
}

func TestLogUsesWarnForProblems(t *testing.T) {
	tests := []struct {
		kind  model.ReportKind
		level string
	}{
		{model.ReportSwitchVerified, "INFO"},
		{model.ReportSweepCompleted, "INFO"},
		{model.ReportSwitchMismatched, "WARN"},
		{model.ReportPlayerGone, "WARN"},
		{model.ReportDeferred, "WARN"},
		{model.ReportRosterRejected, "WARN"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			logger, buf := testutil.CaptureLogger()
			NewLog(logger).Report(model.Report{Kind: tt.kind, PlayerID: 76561198000000001})

			var line map[string]any
			require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line))
			assert.Equal(t, tt.level, line["level"])
			assert.Equal(t, string(tt.kind), line["kind"])
			assert.Equal(t, "76561198000000001", line["player_id"])
		})
	}
}

func TestLogIncludesSweepTallies(t *testing.T) {
	logger, buf := testutil.CaptureLogger()
	NewLog(logger).Report(model.Report{Kind: model.ReportSweepCompleted, Moved: 1, Correct: 4})

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line))
	assert.EqualValues(t, 1, line["moved"])
	assert.EqualValues(t, 4, line["correct"])
	assert.Equal(t, "roster sweep completed", line["msg"])
}

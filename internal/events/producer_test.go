package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/hiring-radar/internal/pipeline"
	"github.com/jonathan/hiring-radar/internal/types"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testReport() *pipeline.Report {
	return &pipeline.Report{
		RunID:       uuid.MustParse("7f1c9a52-3b2d-4c1e-9f5a-2d6b8e4a1c03"),
		GeneratedAt: time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC),
		Processed: &types.ProcessedData{
			Companies: []string{"Acme", "Globex"},
			JobCounts: []int{3, 4},
		},
		Insights: []types.Insight{
			{Type: types.InsightHiringSurge, Company: "Acme", Insight: "Acme surge"},
			{Type: types.InsightRemoteWork, Company: "Globex", Insight: "Globex remote"},
			{Type: types.InsightEmergingSkill, Skill: "Rust", Insight: "Rust emerging"},
		},
		IndustryInsights: types.IndustryInsights{
			"Technology": {{Type: types.InsightIndustryLeader, Industry: "Technology", Insight: "Acme leads"}},
		},
		Recommendations: []types.Recommendation{{Type: "skill_investment"}},
		IndustryRecommendations: types.IndustryRecommendations{
			"Technology": {{Type: "industry_leader_response"}, {Type: "industry_skill_focus"}},
		},
		Degraded: []string{"market shifts"},
	}
}

func decode(t *testing.T, msg kafka.Message) Event {
	t.Helper()
	var ev Event
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	return ev
}

func TestMessages(t *testing.T) {
	report := testReport()
	msgs, err := Messages(report)
	require.NoError(t, err)

	// summary + 4 insights + 1 alert
	require.Len(t, msgs, 6)

	head := decode(t, msgs[0])
	assert.Equal(t, KindReport, head.Kind)
	assert.Equal(t, report.RunID.String(), string(msgs[0].Key))
	require.NotNil(t, head.Run)
	assert.Equal(t, 2, head.Run.Companies)
	assert.Equal(t, 7, head.Run.Listings)
	assert.Equal(t, types.RunStatusDegraded, head.Run.Status)
	assert.Equal(t, 4, head.Insights)
	assert.Equal(t, 3, head.Recommendations)

	var kinds, keys []string
	for _, m := range msgs[1:] {
		ev := decode(t, m)
		kinds = append(kinds, ev.Kind)
		keys = append(keys, string(m.Key))
		require.NotNil(t, ev.Insight)
		assert.Equal(t, report.RunID, ev.RunID)
		assert.Equal(t, ev.Kind, string(m.Headers[0].Value))
	}
	assert.Equal(t, []string{KindInsight, KindAlert, KindInsight, KindInsight, KindInsight}, kinds)
	assert.Equal(t, []string{"Acme", "Acme", "Globex", "Rust", "Technology"}, keys)
}

func TestMessages_EmptyReport(t *testing.T) {
	msgs, err := Messages(&pipeline.Report{RunID: uuid.New()})
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	head := decode(t, msgs[0])
	assert.Equal(t, KindReport, head.Kind)
	assert.Equal(t, types.RunStatusCompleted, head.Run.Status)
	assert.Zero(t, head.Insights)
}

func TestProducer_PublishReport(t *testing.T) {
	writer := &fakeWriter{}
	prod := NewProducerWithWriter(writer)

	require.NoError(t, prod.PublishReport(context.Background(), testReport()))
	assert.Len(t, writer.msgs, 6)

	require.NoError(t, prod.Close())
	assert.True(t, writer.closed)
}

func TestProducer_PublishReportError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker unavailable")}
	prod := NewProducerWithWriter(writer)

	err := prod.PublishReport(context.Background(), testReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
}

func TestIsAlert(t *testing.T) {
	tests := []struct {
		typ  types.InsightType
		want bool
	}{
		{types.InsightHiringSurge, true},
		{types.InsightLeadershipChanges, true},
		{types.InsightTechnologyFocus, true},
		{types.InsightHiringDecline, false},
		{types.InsightRemoteWork, false},
		{types.InsightIndustryLeader, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.want, IsAlert(tt.typ))
		})
	}
}

var _ pipeline.Publisher = (*Producer)(nil)

// Package events publishes finished reports to Kafka: one summary event per run,
// one event per insight, and an alert for every surge-class insight.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/hiring-radar/internal/pipeline"
	"github.com/jonathan/hiring-radar/internal/types"
	"github.com/segmentio/kafka-go"
)

// Event kinds.
const (
	KindReport  = "report"
	KindInsight = "insight"
	KindAlert   = "alert"
)

// alertTypes are the insight types that also raise an alert.
var alertTypes = map[types.InsightType]bool{
	types.InsightHiringSurge:       true,
	types.InsightLeadershipChanges: true,
	types.InsightTechnologyFocus:   true,
}

// IsAlert reports whether an insight of this type raises an alert.
func IsAlert(t types.InsightType) bool {
	return alertTypes[t]
}

// Event is the message payload.
type Event struct {
	Kind            string            `json:"kind"`
	RunID           uuid.UUID         `json:"run_id"`
	GeneratedAt     time.Time         `json:"generated_at"`
	Run             *types.RunSummary `json:"run,omitempty"`
	Insights        int               `json:"insights,omitempty"`
	Recommendations int               `json:"recommendations,omitempty"`
	Insight         *types.Insight    `json:"insight,omitempty"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer wraps a Kafka writer for publishing report events.
type Producer struct {
	writer messageWriter
}

// NewProducer creates a Kafka producer for the given brokers and topic.
func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: false,
		},
	}
}

// NewProducerWithWriter builds a producer using a custom writer (tests).
func NewProducerWithWriter(writer messageWriter) *Producer {
	return &Producer{writer: writer}
}

// Close shuts down the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// PublishReport writes every event for report in a single batch.
func (p *Producer) PublishReport(ctx context.Context, report *pipeline.Report) error {
	msgs, err := Messages(report)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to publish %d events: %w", len(msgs), err)
	}
	return nil
}

// Messages builds the Kafka messages for a report. The summary comes first,
// followed by each insight and, directly after it, its alert when it raises one.
func Messages(report *pipeline.Report) ([]kafka.Message, error) {
	now := report.GeneratedAt.UTC()
	summary := report.Summary()
	all := report.AllInsights()

	msgs := make([]kafka.Message, 0, 1+len(all))
	head, err := message(report.RunID.String(), now, Event{
		Kind:            KindReport,
		RunID:           report.RunID,
		GeneratedAt:     now,
		Run:             &summary,
		Insights:        len(all),
		Recommendations: len(report.Recommendations) + countIndustryRecs(report.IndustryRecommendations),
	})
	if err != nil {
		return nil, err
	}
	msgs = append(msgs, head)

	for i := range all {
		in := all[i]
		for _, kind := range kindsFor(in.Type) {
			msg, err := message(subjectKey(in), now, Event{
				Kind:        kind,
				RunID:       report.RunID,
				GeneratedAt: now,
				Insight:     &in,
			})
			if err != nil {
				return nil, err
			}
			msgs = append(msgs, msg)
		}
	}
	return msgs, nil
}

func kindsFor(t types.InsightType) []string {
	if IsAlert(t) {
		return []string{KindInsight, KindAlert}
	}
	return []string{KindInsight}
}

// subjectKey partitions insight events by what they are about.
func subjectKey(in types.Insight) string {
	switch {
	case in.Company != "":
		return in.Company
	case in.Industry != "":
		return in.Industry
	case in.Skill != "":
		return in.Skill
	default:
		return string(in.Type)
	}
}

func countIndustryRecs(recs types.IndustryRecommendations) int {
	n := 0
	for _, list := range recs {
		n += len(list)
	}
	return n
}

func message(key string, at time.Time, ev Event) (kafka.Message, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal %s event: %w", ev.Kind, err)
	}
	return kafka.Message{
		Key:     []byte(key),
		Value:   payload,
		Time:    at,
		Headers: []kafka.Header{{Key: "kind", Value: []byte(ev.Kind)}},
	}, nil
}

package ws

import (
	"encoding/json"
	"time"

	"jobradar/internal/aggregator"
)

type RunCompletedEvent struct {
	Type      string                  `json:"type"`
	Results   []aggregator.RunSummary `json:"results"`
	Timestamp string                  `json:"timestamp"`
}

// Notifier pushes run summaries to the hub after every aggregation run.
type Notifier struct {
	hub *Hub
}

var _ aggregator.RunNotifier = (*Notifier)(nil)

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyRunCompleted(summaries []aggregator.RunSummary) {
	if n == nil || n.hub == nil {
		return
	}

	evt := RunCompletedEvent{
		Type:      "run_completed",
		Results:   summaries,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Broadcast(b)
}

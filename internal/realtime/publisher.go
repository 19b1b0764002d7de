package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"studio/internal/api/models"
)

// StatusEvent is the payload published for every applied job transition.
type StatusEvent struct {
	JobID    uint             `json:"jobId"`
	Previous models.JobStatus `json:"previous"`
	Status   models.JobStatus `json:"status"`
	ActorID  uint             `json:"actorId"`
	At       time.Time        `json:"at"`
}

// Publisher pushes job status events to NATS for the realtime process.
type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(natsURL string) (*Publisher, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: nc}, nil
}

func (p *Publisher) PublishJobStatus(event StatusEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal status event: %w", err)
	}
	subject := fmt.Sprintf("studio.job.%d.status", event.JobID)
	return p.conn.Publish(subject, data)
}

// Close drains the NATS connection.
func (p *Publisher) Close() {
	p.conn.Drain()
}

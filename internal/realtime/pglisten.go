package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
)

// PGListener picks up job changes made outside the API (bulk imports, manual
// fixes) through Postgres LISTEN/NOTIFY. A row trigger on the jobs table is
// expected to NOTIFY the job_events channel with a JSON payload.
type PGListener struct {
	conn *pgx.Conn
	hub  *Hub
}

type jobEventPayload struct {
	JobID  uint   `json:"jobId"`
	Status string `json:"status"`
}

func NewPGListener(ctx context.Context, dsn string, hub *Hub) (*PGListener, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN job_events"); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("pg listen: %w", err)
	}
	return &PGListener{conn: conn, hub: hub}, nil
}

// Run blocks waiting for notifications until the context is cancelled.
func (l *PGListener) Run(ctx context.Context) {
	log.Printf("pg listener waiting on channel: job_events")
	for {
		notification, err := l.conn.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("pg listener: wait: %v", err)
			return
		}

		var payload jobEventPayload
		if err := json.Unmarshal([]byte(notification.Payload), &payload); err != nil {
			log.Printf("pg listener: bad payload %q: %v", notification.Payload, err)
			continue
		}
		if payload.JobID == 0 {
			continue
		}

		envelope := outgoingMsg{
			Type:    "job.status",
			JobID:   payload.JobID,
			Payload: json.RawMessage(notification.Payload),
		}
		data, err := json.Marshal(envelope)
		if err != nil {
			log.Printf("pg listener: marshal envelope: %v", err)
			continue
		}
		l.hub.broadcast <- broadcastMsg{jobID: payload.JobID, payload: data}
	}
}

// Close closes the listening connection.
func (l *PGListener) Close(ctx context.Context) {
	l.conn.Close(ctx)
}

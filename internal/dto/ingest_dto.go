package dto

import "github.com/google/uuid"

type IngestRequest struct {
	SessionId uuid.UUID `json:"sessionId" validate:"required"`
}

type IngestResponse struct {
	SessionId uuid.UUID `json:"sessionId"`
	Queued    bool      `json:"queued"`
}

// IngestJobMessage travels over the in-process bus from the ingest endpoint
// to the ingestion consumer.
type IngestJobMessage struct {
	SessionId uuid.UUID `json:"sessionId"`
}

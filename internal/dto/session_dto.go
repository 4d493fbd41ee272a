package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	SessionId uuid.UUID `json:"sessionId"`
	UploadUrl string    `json:"uploadUrl"`
}

type ShowSessionResponse struct {
	SessionId  uuid.UUID `json:"sessionId"`
	Status     string    `json:"status"`
	ChunkCount int       `json:"chunkCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

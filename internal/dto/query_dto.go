package dto

import "github.com/google/uuid"

type QueryRequest struct {
	SessionId uuid.UUID `json:"sessionId" validate:"required"`
	Query     string    `json:"query" validate:"required"`
}

type QueryResponse struct {
	SessionId uuid.UUID `json:"sessionId"`
	Answer    string    `json:"answer"`
}

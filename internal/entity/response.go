package entity

import (
	"time"

	"github.com/google/uuid"
)

type SignInResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ProfileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ServerStatusResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// InsertResult, UpdateResult and DeleteResult report what a write touched.

type InsertResult struct {
	Acknowledged bool      `json:"acknowledged"`
	InsertedID   uuid.UUID `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool       `json:"acknowledged"`
	MatchedCount  int64      `json:"matchedCount"`
	ModifiedCount int64      `json:"modifiedCount"`
	UpsertedCount int64      `json:"upsertedCount"`
	UpsertedID    *uuid.UUID `json:"upsertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

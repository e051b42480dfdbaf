package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Input type tags stored in AIMetadata.InputType
const (
	InputTypeURL  = "url"
	InputTypeText = "text"
)

// AIMetadata describes how a summary was generated
type AIMetadata struct {
	Model     string    `bson:"model" json:"model"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	InputType string    `bson:"input_type" json:"input_type"`
}

// Summary is one analysis result, owned by exactly one user.
// Written once on successful analysis and never updated afterwards.
// Collection: summaries
type Summary struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	SourceURL  *string            `bson:"source_url" json:"source_url"`
	RawInput   string             `bson:"raw_input" json:"raw_input"`
	Extracted  bson.M             `bson:"extracted" json:"extracted"`
	AISummary  string             `bson:"ai_summary" json:"ai_summary"`
	AIMetadata AIMetadata         `bson:"ai_metadata" json:"ai_metadata"`
	Tags       []string           `bson:"tags" json:"tags"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AI call operations recorded in ai_logs.
const (
	AIOperationAnalyze = "analyze"
	AIOperationCompare = "compare"
)

// AILog stores completion-service usage logs (system monitoring purpose)
// Collection: ai_logs
type AILog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Operation       string             `bson:"operation" json:"operation"`
	ModelName       string             `bson:"model_name" json:"model_name"`
	ModelVersion    string             `bson:"model_version" json:"model_version"`
	InputTokens     int64              `bson:"input_tokens" json:"input_tokens"`
	OutputTokens    int64              `bson:"output_tokens" json:"output_tokens"`
	TotalTokens     int64              `bson:"total_tokens" json:"total_tokens"`
	DurationMs      int64              `bson:"duration_ms" json:"duration_ms"`
	Success         bool               `bson:"success" json:"success"`
	ErrorMessage    *string            `bson:"error_message,omitempty" json:"error_message,omitempty"`
	RequestID       string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	PromptChars     int                `bson:"prompt_chars" json:"prompt_chars"`
	ResponseExcerpt string             `bson:"response_excerpt" json:"response_excerpt"`
	RequestedAt     time.Time          `bson:"requested_at" json:"requested_at"`
	CompletedAt     time.Time          `bson:"completed_at" json:"completed_at"`
}

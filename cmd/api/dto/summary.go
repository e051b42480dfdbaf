package dto

import (
	"time"

	"product-compare/models"
)

type CreateSummaryRequestDTO struct {
	Input string `json:"input" example:"https://example.com/products/123"`
}

type CompareSummariesRequestDTO struct {
	IDs []string `json:"ids" example:"65f000000000000000000001,65f000000000000000000002"`
}

type AIMetadataDTO struct {
	Model     string    `json:"model" example:"gemini-2.5-flash"`
	Timestamp time.Time `json:"timestamp" example:"2025-01-01T12:00:00Z"`
	InputType string    `json:"inputType" example:"url"`
}

// SummaryDTO는 프론트엔드가 사용하는 camelCase/_id 형식의 요약 레코드다.
type SummaryDTO struct {
	ID         string         `json:"_id" example:"65f000000000000000000001"`
	UserID     string         `json:"userId" example:"65f000000000000000000002"`
	SourceURL  *string        `json:"sourceUrl" example:"https://example.com/products/123"`
	RawInput   string         `json:"rawInput" example:"https://example.com/products/123"`
	Extracted  map[string]any `json:"extracted"`
	AISummary  string         `json:"aiSummary" example:"# Product Analysis"`
	AIMetadata AIMetadataDTO  `json:"aiMetadata"`
	Tags       []string       `json:"tags"`
	CreatedAt  time.Time      `json:"createdAt" example:"2025-01-01T12:00:00Z"`
}

type SummaryResponseDTO struct {
	Success bool       `json:"success" example:"true"`
	Data    SummaryDTO `json:"data"`
}

type SummaryListResponseDTO struct {
	Success bool         `json:"success" example:"true"`
	Data    []SummaryDTO `json:"data"`
}

type CompareResponseDTO struct {
	Success    bool   `json:"success" example:"true"`
	Comparison string `json:"comparison" example:"# Product Comparison Analysis"`
}

type DeleteSummaryResponseDTO struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Summary deleted"`
}

func FromSummary(s *models.Summary) SummaryDTO {
	extracted := map[string]any{}
	for k, v := range s.Extracted {
		extracted[k] = v
	}
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return SummaryDTO{
		ID:        s.ID.Hex(),
		UserID:    s.UserID.Hex(),
		SourceURL: s.SourceURL,
		RawInput:  s.RawInput,
		Extracted: extracted,
		AISummary: s.AISummary,
		AIMetadata: AIMetadataDTO{
			Model:     s.AIMetadata.Model,
			Timestamp: s.AIMetadata.Timestamp,
			InputType: s.AIMetadata.InputType,
		},
		Tags:      tags,
		CreatedAt: s.CreatedAt,
	}
}

func FromSummaries(list []models.Summary) []SummaryDTO {
	out := make([]SummaryDTO, 0, len(list))
	for i := range list {
		out = append(out, FromSummary(&list[i]))
	}
	return out
}

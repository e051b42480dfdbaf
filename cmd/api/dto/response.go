package dto

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"Summary not found"`
}

// HealthResponseDTO는 /health 응답이다. ts 는 epoch millis.
type HealthResponseDTO struct {
	OK bool  `json:"ok" example:"true"`
	TS int64 `json:"ts" example:"1735689600000"`
}

package models

import "time"

type AnalysisResponse struct {
	Success bool            `json:"success"`
	Data    *AnalysisResult `json:"data"`
}

type RoastResponse struct {
	Message string `json:"message"`
	Roast   string `json:"roast"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type StatsResponse struct {
	Since    time.Time      `json:"since"`
	Outcomes []OutcomeCount `json:"outcomes"`
	Total    int64          `json:"total"`
}

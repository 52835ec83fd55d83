package types

import "time"

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status            string    `json:"status"`
	DatabaseConnected bool      `json:"database_connected"`
	Timestamp         time.Time `json:"timestamp"`
}

type EchoResponse struct {
	Echo      interface{} `json:"echo"`
	Timestamp time.Time   `json:"timestamp"`
}

type ReportResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ReportURL string `json:"report_url,omitempty"`
}

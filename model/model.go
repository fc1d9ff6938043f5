package model

type Survey struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	IsVisible   bool   `json:"is_visible"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// SurveyInput is the body of survey create and update requests.
// Nil flags default to true on create; updates are full replacements.
type SurveyInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
	IsVisible   *bool  `json:"is_visible"`
}

type SubmitResponseInput struct {
	SurveyID  string   `json:"survey_id"`
	Platforms []string `json:"platforms"`
}

type SubmitResponseResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type PlatformCount struct {
	PlatformName string `json:"platform_name"`
	Count        int    `json:"count"`
}

type SurveyResults struct {
	TotalResponses int             `json:"total_responses"`
	PlatformCounts []PlatformCount `json:"platform_counts"`
}

// RecentResponse carries one submission with its platform names
// joined by ", " in insertion order.
type RecentResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Platforms string `json:"platforms"`
}

type SurveyStats struct {
	SurveyResults
	RecentResponses []RecentResponse `json:"recent_responses"`
}

type MessageResult struct {
	Message string `json:"message"`
}

type ResetResult struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deleted_count"`
}

type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

package responses

import "consulat-service/internal/app/models"

// DocumentAnalysisResult mirrors the {success, error} envelope returned for AI analysis.
type DocumentAnalysisResult struct {
	Success  bool                     `json:"success"`
	Analysis *models.DocumentAnalysis `json:"analysis,omitempty"`
	Error    string                   `json:"error,omitempty"`
}

type Document struct {
	*models.Document
	URL string `json:"url,omitempty"`
}

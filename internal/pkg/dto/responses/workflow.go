package responses

import "time"

type WorkflowProgress struct {
	CurrentStep         string    `json:"currentStep"`
	CompletedSteps      int       `json:"completedSteps"`
	TotalSteps          int       `json:"totalSteps"`
	NextSteps           []string  `json:"nextSteps"`
	EstimatedCompletion time.Time `json:"estimatedCompletion"`
}

type WorkflowStep struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type ServiceWorkflow struct {
	ServiceID         string         `json:"serviceId"`
	Workflow          []WorkflowStep `json:"workflow"`
	EstimatedDuration int64          `json:"estimatedDuration"`
}

type TransitionValidation struct {
	IsValid            bool     `json:"isValid"`
	AllowedTransitions []string `json:"allowedTransitions"`
	RequiredActions    []string `json:"requiredActions"`
}

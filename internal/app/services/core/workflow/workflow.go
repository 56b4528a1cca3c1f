package workflow

import "time"

// TotalSteps is the number of steps every service workflow goes through.
const TotalSteps = 6

const (
	StepTypeManual    = "manual"
	StepTypeAutomatic = "automatic"

	stepUnknown = "unknown"

	averageStepDuration = 24 * time.Hour
)

type Step struct {
	ID   string
	Name string
	Type string
}

var statusToStep = map[string]string{
	"draft":            "document_preparation",
	"submitted":        "initial_review",
	"pending":          "processing",
	"under_review":     "validation",
	"in_production":    "production",
	"ready_for_pickup": "delivery",
	"completed":        "completed",
}

var nextSteps = map[string][]string{
	"draft":            {"submitted"},
	"submitted":        {"pending", "rejected"},
	"pending":          {"under_review", "rejected"},
	"under_review":     {"in_production", "rejected"},
	"in_production":    {"ready_for_pickup"},
	"ready_for_pickup": {"completed"},
}

var validTransitions = map[string][]string{
	"draft":            {"submitted", "cancelled"},
	"submitted":        {"pending", "rejected", "cancelled"},
	"pending":          {"under_review", "rejected", "cancelled"},
	"under_review":     {"in_production", "rejected", "cancelled"},
	"in_production":    {"ready_for_pickup"},
	"ready_for_pickup": {"completed"},
	"completed":        {},
	"rejected":         {"draft", "cancelled"},
	"cancelled":        {},
}

var requiredActions = map[string]map[string][]string{
	"draft":            {"submitted": {"validate_documents", "check_requirements"}},
	"submitted":        {"pending": {"assign_agent", "schedule_review"}},
	"pending":          {"under_review": {"complete_initial_check"}},
	"under_review":     {"in_production": {"approve_documents", "initiate_production"}},
	"in_production":    {"ready_for_pickup": {"complete_production", "schedule_delivery"}},
	"ready_for_pickup": {"completed": {"confirm_delivery", "update_records"}},
}

func CurrentStep(status string) string {
	if step, ok := statusToStep[status]; ok {
		return step
	}
	return stepUnknown
}

func NextSteps(status string) []string {
	return copyOrEmpty(nextSteps[status])
}

// EstimatedCompletion assumes every remaining step takes one day.
func EstimatedCompletion(now time.Time, completedSteps int) time.Time {
	remaining := TotalSteps - completedSteps
	return now.Add(time.Duration(remaining) * averageStepDuration)
}

func AllowedTransitions(fromStatus string) []string {
	return copyOrEmpty(validTransitions[fromStatus])
}

// IsValidTransition only consults the advisory table; nothing is rejected on its basis.
func IsValidTransition(fromStatus, toStatus string) bool {
	for _, status := range validTransitions[fromStatus] {
		if status == toStatus {
			return true
		}
	}
	return false
}

func RequiredActions(fromStatus, toStatus string) []string {
	return copyOrEmpty(requiredActions[fromStatus][toStatus])
}

func DefineServiceWorkflow(processingMode string) []Step {
	processingType := StepTypeManual
	if processingMode == "online_only" {
		processingType = StepTypeAutomatic
	}
	return []Step{
		{ID: "document_preparation", Name: "Préparation des documents", Type: StepTypeManual},
		{ID: "initial_review", Name: "Révision initiale", Type: StepTypeManual},
		{ID: "processing", Name: "Traitement", Type: processingType},
		{ID: "validation", Name: "Validation", Type: StepTypeManual},
		{ID: "production", Name: "Production", Type: StepTypeAutomatic},
		{ID: "delivery", Name: "Livraison", Type: StepTypeManual},
	}
}

func WorkflowDuration(steps []Step) time.Duration {
	return time.Duration(len(steps)) * averageStepDuration
}

func copyOrEmpty(values []string) []string {
	result := make([]string, len(values))
	copy(result, values)
	return result
}

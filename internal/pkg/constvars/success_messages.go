package constvars

const (
	ResponseUnknown = "unknown"

	TerritorialityEvaluatedSuccessMessage = "territoriality evaluated successfully"
	ProfileGetSuccessMessage              = "get profile successfully"
	ProfileLocationUpdatedSuccessMessage  = "profile location updated successfully"

	WorkflowProgressGetSuccessMessage     = "get workflow progress successfully"
	ServiceWorkflowGetSuccessMessage      = "get service workflow successfully"
	WorkflowTransitionCheckSuccessMessage = "workflow transition checked successfully"

	OrganizationGetSuccessMessage         = "get organization successfully"
	OrganizationsGetSuccessMessage        = "get organizations successfully"
	OrganizationServicesGetSuccessMessage = "get organization services successfully"

	ServiceRequestCreatedSuccessMessage       = "service request created successfully"
	ServiceRequestGetSuccessMessage           = "get service request successfully"
	ServiceRequestsGetSuccessMessage          = "get service requests successfully"
	ServiceRequestSubmittedSuccessMessage     = "service request submitted successfully"
	ServiceRequestStatusUpdatedSuccessMessage = "service request status updated successfully"
	ServiceRequestCancelledSuccessMessage     = "service request cancelled successfully"

	SlotsGetSuccessMessage              = "get available slots successfully"
	AppointmentBookedSuccessMessage     = "appointment booked successfully"
	AppointmentsGetSuccessMessage       = "get appointments successfully"
	AppointmentCancelledSuccessMessage  = "appointment cancelled successfully"
	AppointmentCompletedSuccessMessage  = "appointment completed successfully"
	AppointmentNoShowSuccessMessage     = "appointment marked as missed successfully"
	AgentScheduleUpsertedSuccessMessage = "agent schedule saved successfully"

	PaymentIntentCreatedSuccessMessage  = "payment intent created successfully"
	PaymentWebhookHandledSuccessMessage = "payment webhook handled successfully"
	PaymentGetSuccessMessage            = "get payment successfully"
	PaymentsGetSuccessMessage           = "get payments successfully"
	PaymentStatsGetSuccessMessage       = "get payment statistics successfully"

	DocumentUploadedSuccessMessage = "document uploaded successfully"
	DocumentGetSuccessMessage      = "get document successfully"
	DocumentsGetSuccessMessage     = "get documents successfully"
	DocumentAnalyzedSuccessMessage = "document analyzed successfully"

	PlacesAutocompleteSuccessMessage = "get address predictions successfully"
	PlaceDetailsSuccessMessage       = "get place details successfully"

	SignInTokenCreatedSuccessMessage = "sign in token created successfully"
	DevAccountsGetSuccessMessage     = "get test accounts successfully"

	TicketCreatedSuccessMessage       = "ticket created successfully"
	TicketGetSuccessMessage           = "get ticket successfully"
	TicketsGetSuccessMessage          = "get tickets successfully"
	TicketMessageAddedSuccessMessage  = "ticket message added successfully"
	TicketStatusUpdatedSuccessMessage = "ticket status updated successfully"
	TicketAssignedSuccessMessage      = "ticket assigned successfully"

	CallStartedSuccessMessage = "call started successfully"

	StatisticsGetSuccessMessage = "get statistics successfully"

	ReminderRunTriggeredSuccessMessage = "reminder run triggered successfully"
)

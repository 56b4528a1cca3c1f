package constvars

const (
	NotificationTypeRequestStatusChanged = "request_status_changed"
	NotificationTypePaymentSucceeded     = "payment_succeeded"
	NotificationTypeAppointmentReminder  = "appointment_reminder"
	NotificationTypePresenceSignaled     = "presence_signaled"
	NotificationTypeTicketReplied        = "ticket_replied"
)

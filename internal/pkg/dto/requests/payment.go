package requests

type ListPayments struct {
	OrgID  string `validate:"required"`
	Status string `validate:"omitempty,oneof=pending processing succeeded failed refunded"`
	Limit  int    `validate:"gte=0,lte=500"`
}

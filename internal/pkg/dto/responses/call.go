package responses

type Call struct {
	AircallUserID string `json:"aircallUserId"`
	NumberID      string `json:"numberId"`
	To            string `json:"to"`
}

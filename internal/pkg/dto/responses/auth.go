package responses

type SignInToken struct {
	Token  string `json:"token"`
	URL    string `json:"url"`
	UserID string `json:"userId"`
}

type DevAccount struct {
	Label  string `json:"label"`
	UserID string `json:"userId"`
}

package requests

type CreateSignInToken struct {
	Account string `json:"account" validate:"required"`
}

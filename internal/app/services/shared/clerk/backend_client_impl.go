package clerk

import (
	"bytes"
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/pkg/dto/responses"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

const (
	serviceName              = "clerk"
	signInTokenExpirySeconds = 300
)

type backendClient struct {
	HTTPClient *http.Client
	BaseURL    string
	SecretKey  string
}

func NewBackendClient(baseURL, secretKey string) contracts.IdentityProvider {
	return &backendClient{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		SecretKey:  secretKey,
	}
}

func (c *backendClient) CreateSignInToken(ctx context.Context, userID string) (*responses.SignInToken, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"user_id":            userID,
		"expires_in_seconds": signInTokenExpirySeconds,
	})
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/sign_in_tokens", bytes.NewReader(payload))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		message := gjson.GetBytes(body, "errors.0.long_message").String()
		if message == "" {
			message = resp.Status
		}
		return nil, exceptions.ErrExternalServiceStatus(errors.New(message), serviceName, resp.Status)
	}

	return &responses.SignInToken{
		Token:  gjson.GetBytes(body, "token").String(),
		URL:    gjson.GetBytes(body, "url").String(),
		UserID: gjson.GetBytes(body, "user_id").String(),
	}, nil
}

package aircall

import (
	"bytes"
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

const serviceName = "aircall"

type aircallClient struct {
	HTTPClient *http.Client
	BaseURL    string
	APIID      string
	APIToken   string
}

func NewAircallClient(baseURL, apiID, apiToken string) contracts.TelephonyClient {
	return &aircallClient{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIID:      apiID,
		APIToken:   apiToken,
	}
}

// StartOutboundCall asks Aircall to ring the agent's phone app and dial the number from numberID.
func (c *aircallClient) StartOutboundCall(ctx context.Context, aircallUserID, numberID, to string) error {
	number, err := strconv.Atoi(numberID)
	if err != nil {
		return exceptions.ErrURLParamValidation(err, "numberId")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"number_id": number,
		"to":        to,
	})
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	url := fmt.Sprintf("%s/users/%s/calls", c.BaseURL, aircallUserID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.SetBasicAuth(c.APIID, c.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		message := gjson.GetBytes(body, "message").String()
		if message == "" {
			message = resp.Status
		}
		return exceptions.ErrExternalServiceStatus(errors.New(message), serviceName, resp.Status)
	}
	return nil
}

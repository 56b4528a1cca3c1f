package places

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"

	defaultTypes  = "address"
	detailsFields = "address_components,formatted_address,geometry,name,place_id"
	serviceName   = "google places"
)

type googlePlacesClient struct {
	HTTPClient      *http.Client
	BaseURL         string
	APIKey          string
	DefaultLanguage string
}

func NewGooglePlacesClient(baseURL, apiKey, defaultLanguage string) contracts.PlacesClient {
	return &googlePlacesClient{
		HTTPClient:      &http.Client{Timeout: 10 * time.Second},
		BaseURL:         strings.TrimRight(baseURL, "/"),
		APIKey:          apiKey,
		DefaultLanguage: defaultLanguage,
	}
}

func (c *googlePlacesClient) Autocomplete(ctx context.Context, request *requests.PlacesAutocomplete) ([]responses.PlacePrediction, error) {
	params := url.Values{}
	params.Set("input", request.Input)
	params.Set("key", c.APIKey)
	params.Set("types", valueOrDefault(request.Types, defaultTypes))
	params.Set("language", valueOrDefault(request.Language, c.DefaultLanguage))
	if request.Components != "" {
		params.Set("components", request.Components)
	}

	body, err := c.get(ctx, "/autocomplete/json", params)
	if err != nil {
		return nil, err
	}

	status := gjson.GetBytes(body, "status").String()
	if status != statusOK && status != statusZeroResults {
		return nil, apiError(body, status)
	}

	predictionResults := gjson.GetBytes(body, "predictions").Array()
	predictions := make([]responses.PlacePrediction, 0, len(predictionResults))
	for _, prediction := range predictionResults {
		description := prediction.Get("description").String()
		mainText := prediction.Get("structured_formatting.main_text").String()
		if mainText == "" {
			mainText = description
		}
		predictions = append(predictions, responses.PlacePrediction{
			PlaceID:       prediction.Get("place_id").String(),
			Description:   description,
			MainText:      mainText,
			SecondaryText: prediction.Get("structured_formatting.secondary_text").String(),
		})
	}
	return predictions, nil
}

func (c *googlePlacesClient) GetDetails(ctx context.Context, placeID, language string) (*responses.Address, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("key", c.APIKey)
	params.Set("fields", detailsFields)
	params.Set("language", valueOrDefault(language, c.DefaultLanguage))

	body, err := c.get(ctx, "/details/json", params)
	if err != nil {
		return nil, err
	}

	status := gjson.GetBytes(body, "status").String()
	if status != statusOK {
		return nil, apiError(body, status)
	}

	result := gjson.GetBytes(body, "result")
	components := map[string]gjson.Result{}
	for _, component := range result.Get("address_components").Array() {
		for _, componentType := range component.Get("types").Array() {
			if _, exists := components[componentType.String()]; !exists {
				components[componentType.String()] = component
			}
		}
	}

	streetNumber := components["street_number"].Get("long_name").String()
	route := components["route"].Get("long_name").String()
	street := strings.TrimSpace(streetNumber + " " + route)

	city := components["locality"].Get("long_name").String()
	if city == "" {
		city = components["administrative_area_level_2"].Get("long_name").String()
	}

	return &responses.Address{
		Street:           street,
		City:             city,
		PostalCode:       components["postal_code"].Get("long_name").String(),
		Country:          components["country"].Get("long_name").String(),
		CountryCode:      components["country"].Get("short_name").String(),
		FormattedAddress: result.Get("formatted_address").String(),
		Lat:              result.Get("geometry.location.lat").Float(),
		Lng:              result.Get("geometry.location.lng").Float(),
	}, nil
}

func (c *googlePlacesClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, exceptions.ErrExternalServiceStatus(fmt.Errorf("unexpected HTTP status %d", resp.StatusCode), serviceName, resp.Status)
	}
	return body, nil
}

// apiError prefers the error_message Google sends along with a failed status.
func apiError(body []byte, status string) error {
	message := gjson.GetBytes(body, "error_message").String()
	if message == "" {
		message = status
	}
	return exceptions.ErrExternalServiceStatus(errors.New(message), serviceName, status)
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

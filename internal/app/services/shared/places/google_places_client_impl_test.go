package places

import (
	"consulat-service/internal/pkg/dto/requests"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(server.Close)
	return server
}

func TestGooglePlacesClient_Autocomplete(t *testing.T) {
	t.Run("sends defaults and normalizes predictions", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/autocomplete/json", r.URL.Path)
			query := r.URL.Query()
			assert.Equal(t, "12 rue", query.Get("input"))
			assert.Equal(t, "secret", query.Get("key"))
			assert.Equal(t, "address", query.Get("types"))
			assert.Equal(t, "fr", query.Get("language"))
			assert.Equal(t, "country:ga", query.Get("components"))
			w.Write([]byte(`{"status":"OK","predictions":[
				{"place_id":"p1","description":"12 Rue de Paris, Libreville","structured_formatting":{"main_text":"12 Rue de Paris","secondary_text":"Libreville"}},
				{"place_id":"p2","description":"Rue sans format"}
			]}`))
		})
		client := NewGooglePlacesClient(server.URL, "secret", "fr")

		predictions, err := client.Autocomplete(context.Background(), &requests.PlacesAutocomplete{Input: "12 rue", Components: "country:ga"})

		require.NoError(t, err)
		require.Len(t, predictions, 2)
		assert.Equal(t, "p1", predictions[0].PlaceID)
		assert.Equal(t, "12 Rue de Paris", predictions[0].MainText)
		assert.Equal(t, "Libreville", predictions[0].SecondaryText)
		assert.Equal(t, "Rue sans format", predictions[1].MainText, "main text falls back to description")
	})

	t.Run("zero results is an empty success", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ZERO_RESULTS","predictions":[]}`))
		})
		client := NewGooglePlacesClient(server.URL, "secret", "fr")

		predictions, err := client.Autocomplete(context.Background(), &requests.PlacesAutocomplete{Input: "zzzz"})

		require.NoError(t, err)
		assert.Empty(t, predictions)
	})

	t.Run("other statuses surface the google error message", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid."}`))
		})
		client := NewGooglePlacesClient(server.URL, "bad", "fr")

		_, err := client.Autocomplete(context.Background(), &requests.PlacesAutocomplete{Input: "Libreville"})

		require.Error(t, err)
		assert.Equal(t, "The provided API key is invalid.", errors.Unwrap(err).Error())
	})
}

func TestGooglePlacesClient_GetDetails(t *testing.T) {
	t.Run("extracts address parts", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/details/json", r.URL.Path)
			assert.Equal(t, "place-1", r.URL.Query().Get("place_id"))
			assert.Equal(t, "address_components,formatted_address,geometry,name,place_id", r.URL.Query().Get("fields"))
			assert.Equal(t, "en", r.URL.Query().Get("language"))
			w.Write([]byte(`{"status":"OK","result":{
				"formatted_address":"12 Rue de Rivoli, 75001 Paris, France",
				"geometry":{"location":{"lat":48.8566,"lng":2.3522}},
				"address_components":[
					{"long_name":"12","short_name":"12","types":["street_number"]},
					{"long_name":"Rue de Rivoli","short_name":"Rue de Rivoli","types":["route"]},
					{"long_name":"Paris","short_name":"Paris","types":["locality","political"]},
					{"long_name":"75001","short_name":"75001","types":["postal_code"]},
					{"long_name":"France","short_name":"FR","types":["country","political"]}
				]}}`))
		})
		client := NewGooglePlacesClient(server.URL, "secret", "fr")

		address, err := client.GetDetails(context.Background(), "place-1", "en")

		require.NoError(t, err)
		assert.Equal(t, "12 Rue de Rivoli", address.Street)
		assert.Equal(t, "Paris", address.City)
		assert.Equal(t, "75001", address.PostalCode)
		assert.Equal(t, "France", address.Country)
		assert.Equal(t, "FR", address.CountryCode)
		assert.InDelta(t, 48.8566, address.Lat, 0.0001)
		assert.InDelta(t, 2.3522, address.Lng, 0.0001)
	})

	t.Run("city falls back to the second administrative level and street to the route", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"OK","result":{"address_components":[
				{"long_name":"Route Nationale 1","types":["route"]},
				{"long_name":"Estuaire","types":["administrative_area_level_2"]},
				{"long_name":"Gabon","short_name":"GA","types":["country"]}
			]}}`))
		})
		client := NewGooglePlacesClient(server.URL, "secret", "fr")

		address, err := client.GetDetails(context.Background(), "place-2", "")

		require.NoError(t, err)
		assert.Equal(t, "Route Nationale 1", address.Street)
		assert.Equal(t, "Estuaire", address.City)
		assert.Equal(t, "GA", address.CountryCode)
	})

	t.Run("zero results is an error for details", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"NOT_FOUND"}`))
		})
		client := NewGooglePlacesClient(server.URL, "secret", "fr")

		_, err := client.GetDetails(context.Background(), "missing", "")

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", errors.Unwrap(err).Error())
	})
}

package contracts

import (
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/dto/responses"
	"context"
)

type PlacesUsecase interface {
	Autocomplete(ctx context.Context, request *requests.PlacesAutocomplete) (*responses.PlacesAutocomplete, error)
	GetDetails(ctx context.Context, request *requests.PlaceDetails) (*responses.PlaceDetails, error)
}

type PlacesClient interface {
	Autocomplete(ctx context.Context, request *requests.PlacesAutocomplete) ([]responses.PlacePrediction, error)
	GetDetails(ctx context.Context, placeID, language string) (*responses.Address, error)
}

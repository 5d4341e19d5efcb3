package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"
	"googlemaps.github.io/maps"
)

// GooglePlacesClient is a mock type for the GooglePlacesClient type.
type GooglePlacesClient struct {
	mock.Mock
}

// TextSearch provides a mock function with given fields: ctx, r.
func (_m *GooglePlacesClient) TextSearch(
	ctx context.Context,
	r *maps.TextSearchRequest,
) (maps.PlacesSearchResponse, error) {
	ret := _m.Called(ctx, r)

	var r0 maps.PlacesSearchResponse
	if rf, ok := ret.Get(0).(func(context.Context, *maps.TextSearchRequest) maps.PlacesSearchResponse); ok {
		r0 = rf(ctx, r)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(maps.PlacesSearchResponse)
	}

	return r0, ret.Error(1)
}

// NewGooglePlacesClient creates a new instance of GooglePlacesClient. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewGooglePlacesClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *GooglePlacesClient {
	m := &GooglePlacesClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

package mocks

import (
	"context"

	"github.com/UnknownOlympus/citymap/internal/category"
	"github.com/UnknownOlympus/citymap/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// Fetcher is a mock type for the Fetcher type.
type Fetcher struct {
	mock.Mock
}

// FetchAll provides a mock function with given fields: ctx, categories.
func (_m *Fetcher) FetchAll(ctx context.Context, categories []category.Category) []models.PointOfInterest {
	ret := _m.Called(ctx, categories)

	if rf, ok := ret.Get(0).(func(context.Context, []category.Category) []models.PointOfInterest); ok {
		return rf(ctx, categories)
	}
	if ret.Get(0) == nil {
		return nil
	}

	return ret.Get(0).([]models.PointOfInterest)
}

// NewFetcher creates a new instance of Fetcher. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewFetcher(t interface {
	mock.TestingT
	Cleanup(func())
}) *Fetcher {
	m := &Fetcher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

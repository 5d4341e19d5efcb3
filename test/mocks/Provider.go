package mocks

import (
	"context"

	"github.com/UnknownOlympus/citymap/internal/category"
	"github.com/UnknownOlympus/citymap/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// Provider is a mock type for the Provider type.
type Provider struct {
	mock.Mock
}

// Search provides a mock function with given fields: ctx, cat, area.
func (_m *Provider) Search(
	ctx context.Context,
	cat category.Category,
	area string,
) ([]models.PointOfInterest, error) {
	ret := _m.Called(ctx, cat, area)

	var r0 []models.PointOfInterest
	if rf, ok := ret.Get(0).(func(context.Context, category.Category, string) []models.PointOfInterest); ok {
		r0 = rf(ctx, cat, area)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.PointOfInterest)
	}

	return r0, ret.Error(1)
}

// NewProvider creates a new instance of Provider. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *Provider {
	m := &Provider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

package services_test

import (
	"testing"
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/driver"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func driverAt(t *testing.T, latitude, longitude float64) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	update, err := driver.NewLocationUpdate(latitude, longitude, 10, 5, 90)
	require.NoError(t, err)
	require.NoError(t, d.RecordLocation(update, time.Now()))
	return d
}

func TestCandidateSelector_Select(t *testing.T) {
	pickup, err := kernel.NewLocation(51.5074, -0.1278)
	require.NoError(t, err)

	t.Run("should rank drivers nearest first", func(t *testing.T) {
		near := driverAt(t, 51.5080, -0.1280)   // a few hundred metres
		middle := driverAt(t, 51.5200, -0.1400) // roughly 1.6 km
		far := driverAt(t, 51.5400, -0.1600)    // roughly 4 km

		selector := services.NewCandidateSelector(5, 10)

		result, err := selector.Select(pickup, []*driver.Driver{far, near, middle})

		require.NoError(t, err)
		require.Len(t, result, 3)
		assert.True(t, result[0].ID().IsEqual(near.ID()))
		assert.True(t, result[1].ID().IsEqual(middle.ID()))
		assert.True(t, result[2].ID().IsEqual(far.ID()))
	})

	t.Run("should exclude drivers beyond the radius", func(t *testing.T) {
		near := driverAt(t, 51.5080, -0.1280)
		outside := driverAt(t, 52.4862, -1.8904) // Birmingham, well over 100 km

		selector := services.NewCandidateSelector(5, 10)

		result, err := selector.Select(pickup, []*driver.Driver{near, outside})

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.True(t, result[0].ID().IsEqual(near.ID()))
	})

	t.Run("should exclude busy drivers", func(t *testing.T) {
		available := driverAt(t, 51.5080, -0.1280)
		busy := driverAt(t, 51.5076, -0.1279)
		require.NoError(t, busy.AssignDelivery(kernel.NewUUID()))

		selector := services.NewCandidateSelector(5, 10)

		result, err := selector.Select(pickup, []*driver.Driver{available, busy})

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.True(t, result[0].ID().IsEqual(available.ID()))
	})

	t.Run("should exclude drivers with no known location", func(t *testing.T) {
		silent, err := driver.NewDriver(kernel.NewUUID(), time.Now())
		require.NoError(t, err)

		selector := services.NewCandidateSelector(5, 10)

		result, err := selector.Select(pickup, []*driver.Driver{silent})

		assert.Nil(t, result)
		require.ErrorIs(t, err, services.ErrNoCandidates)
	})

	t.Run("should cap the number of candidates", func(t *testing.T) {
		drivers := []*driver.Driver{
			driverAt(t, 51.5080, -0.1280),
			driverAt(t, 51.5090, -0.1290),
			driverAt(t, 51.5100, -0.1300),
		}

		selector := services.NewCandidateSelector(5, 2)

		result, err := selector.Select(pickup, drivers)

		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("should return error when no drivers provided", func(t *testing.T) {
		selector := services.NewCandidateSelector(5, 10)

		result, err := selector.Select(pickup, nil)

		assert.Nil(t, result)
		require.ErrorIs(t, err, services.ErrNoCandidates)
	})
}

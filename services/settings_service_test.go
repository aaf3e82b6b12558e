package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/models"
)

func TestSettingsLoadAndReplace(t *testing.T) {
	be := newFakeBackend()
	s := NewSettingsService(be)

	st, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, st.TaxRate.Equal(dec("5")))
	assert.Equal(t, "Siam", st.RestaurantName)

	err = s.Replace(models.Settings{TaxRate: dec("150")})
	assert.ErrorIs(t, err, ErrInvalidSettings)

	st, err = s.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, st.TaxRate.Equal(dec("5")), "rejected settings leave the old ones in place")

	require.NoError(t, s.Replace(models.Settings{TaxRate: dec("11"), DiscountRate: dec("0")}))
	st, _ = s.Get(context.Background())
	assert.True(t, st.TaxRate.Equal(dec("11")))
}

func TestSessionStatus(t *testing.T) {
	be := newFakeBackend()
	s := NewSessionService(be)

	st, err := s.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Active)
	assert.Equal(t, SessionRedirect, st.Redirect)

	be.session = &models.Session{ID: 3, Status: models.SessionOpen}
	st, err = s.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Active)
	assert.Equal(t, uint(3), st.Session.ID)
}

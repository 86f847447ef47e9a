package queries_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCandidateRailTripsQuery_Valid(t *testing.T) {
	notBefore := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	query, err := queries.NewCandidateRailTripsQuery("Harborview", notBefore)
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	assert.Equal(t, "Harborview", query.DestinationCity())
	assert.Equal(t, notBefore, query.NotBefore())
}

func TestNewCandidateRailTripsQuery_ZeroNotBeforeIsAllowed(t *testing.T) {
	query, err := queries.NewCandidateRailTripsQuery("Harborview", time.Time{})
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.NotBefore().IsZero())
}

func TestNewCandidateRailTripsQuery_EmptyDestination(t *testing.T) {
	_, err := queries.NewCandidateRailTripsQuery("", time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrDestinationCityIsRequired)
}

func TestCandidateRailTripsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.CandidateRailTripsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrCandidateRailTripsQueryIsNotConstructed)
}

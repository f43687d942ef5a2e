package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aprs3/f1dashboard-go/pkg/model"
	"github.com/aprs3/f1dashboard-go/testsupport/basedata"
)

type countingSource struct {
	loads  int
	events int
}

func (c *countingSource) Events(_ context.Context, _ YearRange) (
	[]model.EventDescriptor, error,
) {
	c.events++
	return []model.EventDescriptor{basedata.SampleEventDescriptor()}, nil
}

//nolint:whitespace // editor/linter issue
func (c *countingSource) LoadSession(
	_ context.Context, _ int, _ string, _ model.SessionType,
) (*model.Session, error) {
	c.loads++
	return basedata.SampleRaceSession(), nil
}

func TestCachedSource_LoadsOnce(t *testing.T) {
	delegate := &countingSource{}
	src := NewCachedSource(delegate, WithExpiration(time.Hour))
	ctx := context.Background()

	first, err := src.LoadSession(ctx, 2024, "Testland Grand Prix", model.SessionRace)
	require.NoError(t, err)
	second, err := src.LoadSession(ctx, 2024, "Testland Grand Prix", model.SessionRace)
	require.NoError(t, err)
	assert.Equal(t, 1, delegate.loads)
	assert.Same(t, first, second)
}

func TestCachedSource_DistinctKeys(t *testing.T) {
	delegate := &countingSource{}
	src := NewCachedSource(delegate)
	ctx := context.Background()

	_, err := src.LoadSession(ctx, 2024, "Testland Grand Prix", model.SessionRace)
	require.NoError(t, err)
	_, err = src.LoadSession(ctx, 2024, "Testland Grand Prix", model.SessionQualifying)
	require.NoError(t, err)
	_, err = src.LoadSession(ctx, 2023, "Testland Grand Prix", model.SessionRace)
	require.NoError(t, err)
	assert.Equal(t, 3, delegate.loads)
}

func TestCachedSource_EventsPassThrough(t *testing.T) {
	delegate := &countingSource{}
	src := NewCachedSource(delegate)
	ctx := context.Background()

	_, err := src.Events(ctx, YearRange{From: 2023, To: 2024})
	require.NoError(t, err)
	_, err = src.Events(ctx, YearRange{From: 2023, To: 2024})
	require.NoError(t, err)
	assert.Equal(t, 2, delegate.events)
}

package gateways

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/thirdparty/internal/domain/entities"
)

type fixedLookup struct {
	name     string
	licenses []entities.LicenseEntry
	err      error
	calls    int
}

func (f *fixedLookup) Name() string { return f.name }

func (f *fixedLookup) Lookup(context.Context, entities.ArtifactCoordinate) ([]entities.LicenseEntry, error) {
	f.calls++
	return f.licenses, f.err
}

func TestCompositeLookupGateway_FirstAnswerWins(t *testing.T) {
	failing := &fixedLookup{name: "a", err: errors.New("down")}
	empty := &fixedLookup{name: "b"}
	answering := &fixedLookup{name: "c", licenses: []entities.LicenseEntry{{Name: "MIT"}}}
	skipped := &fixedLookup{name: "d", licenses: []entities.LicenseEntry{{Name: "GPL"}}}

	composite := NewCompositeLookupGateway(failing, empty, answering, skipped)
	licenses, err := composite.Lookup(context.Background(), guava)

	require.NoError(t, err)
	assert.Equal(t, []entities.LicenseEntry{{Name: "MIT"}}, licenses)
	assert.Equal(t, 0, skipped.calls)
	assert.Equal(t, "composite(a,b,c,d)", composite.Name())
}

func TestCompositeLookupGateway_AllFail(t *testing.T) {
	composite := NewCompositeLookupGateway(
		&fixedLookup{name: "a", err: errors.New("down")},
		&fixedLookup{name: "b"},
	)

	licenses, err := composite.Lookup(context.Background(), guava)

	assert.Empty(t, licenses)
	assert.ErrorContains(t, err, "a: down")
}

func TestCompositeLookupGateway_NothingKnown(t *testing.T) {
	licenses, err := NewCompositeLookupGateway(&fixedLookup{name: "a"}).Lookup(context.Background(), guava)

	assert.NoError(t, err)
	assert.Empty(t, licenses)
}

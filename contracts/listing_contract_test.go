package contracts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListSkill(t *testing.T) {
	ctx := NewMockContext()
	contract := new(ListingContract)

	ctx.stub.MockTransactionStart("tx1")
	err := contract.ListSkill(ctx.as("carol"), "kubernetes-security", 1000, "ipfs://x")
	ctx.stub.MockTransactionEnd("tx1")
	assert.NoError(t, err)

	listing, err := contract.GetListing(ctx, "kubernetes-security")
	assert.NoError(t, err)
	assert.Equal(t, "carol", listing.Creator)
	assert.Equal(t, "kubernetes-security", listing.SkillID)
	assert.Equal(t, uint64(1000), listing.Price)
	assert.Equal(t, "ipfs://x", listing.MetadataURI)
	assert.Equal(t, uint64(0), listing.TotalSales)
	assert.True(t, listing.IsActive)

	var ev SkillListedEvent
	assert.True(t, lastEvent(t, ctx.stub, "SkillListed", &ev))
	assert.Equal(t, "carol", ev.Creator)
	assert.Equal(t, "kubernetes-security", ev.SkillID)
	assert.Equal(t, uint64(1000), ev.Price)

	// A second listing under the same skill id is rejected, regardless of caller
	ctx.stub.MockTransactionStart("tx2")
	err = contract.ListSkill(ctx.as("dave"), "kubernetes-security", 2000, "ipfs://y")
	ctx.stub.MockTransactionEnd("tx2")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already listed")
}

func TestListSkillValidation(t *testing.T) {
	ctx := NewMockContext()
	contract := new(ListingContract)

	ctx.stub.MockTransactionStart("tx1")

	err := contract.ListSkill(ctx.as("carol"), strings.Repeat("a", 33), 1000, "ipfs://x")
	assert.ErrorIs(t, err, ErrSkillIDTooLong)

	err = contract.ListSkill(ctx.as("carol"), "sk1", 1000, strings.Repeat("u", 201))
	assert.ErrorIs(t, err, ErrMetadataURITooLong)

	err = contract.ListSkill(ctx.as("carol"), "sk1", 0, "ipfs://x")
	assert.ErrorIs(t, err, ErrInvalidPrice)

	// The bounds themselves are allowed
	err = contract.ListSkill(ctx.as("carol"), strings.Repeat("a", 32), 1, strings.Repeat("u", 200))
	assert.NoError(t, err)

	ctx.stub.MockTransactionEnd("tx1")

	// Nothing was written for the rejected listings
	_, err = contract.GetListing(ctx, "sk1")
	assert.Error(t, err)
}

func TestDeactivateListing(t *testing.T) {
	ctx := NewMockContext()
	contract := new(ListingContract)

	ctx.stub.MockTransactionStart("tx1")
	err := contract.ListSkill(ctx.as("carol"), "sk1", 1000, "ipfs://x")
	assert.NoError(t, err)
	drainEvents(ctx.stub)

	// Only the creator may deactivate
	err = contract.DeactivateListing(ctx.as("mallory"), "sk1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	listing, _ := contract.GetListing(ctx, "sk1")
	assert.True(t, listing.IsActive)

	err = contract.DeactivateListing(ctx.as("carol"), "sk1")
	assert.NoError(t, err)
	ctx.stub.MockTransactionEnd("tx1")

	listing, _ = contract.GetListing(ctx, "sk1")
	assert.False(t, listing.IsActive)

	var ev ListingDeactivatedEvent
	assert.True(t, lastEvent(t, ctx.stub, "ListingDeactivated", &ev))
	assert.Equal(t, "sk1", ev.SkillID)
	assert.Equal(t, "carol", ev.Creator)
}

func TestGetActiveListings(t *testing.T) {
	ctx := NewMockContext()
	contract := new(ListingContract)

	ctx.stub.MockTransactionStart("tx1")
	assert.NoError(t, contract.ListSkill(ctx.as("carol"), "sk1", 1000, "ipfs://x"))
	assert.NoError(t, contract.ListSkill(ctx.as("carol"), "sk2", 2000, "ipfs://y"))
	assert.NoError(t, contract.ListSkill(ctx.as("dave"), "sk3", 3000, "ipfs://z"))
	assert.NoError(t, contract.DeactivateListing(ctx.as("carol"), "sk2"))
	ctx.stub.MockTransactionEnd("tx1")

	active, err := contract.GetActiveListings(ctx)
	assert.NoError(t, err)
	assert.Len(t, active, 2)
	for _, listing := range active {
		assert.True(t, listing.IsActive)
		assert.NotEqual(t, "sk2", listing.SkillID)
	}

	byCarol, err := contract.GetListingsByCreator(ctx, "carol")
	assert.NoError(t, err)
	assert.Len(t, byCarol, 2)

	byDave, err := contract.GetListingsByCreator(ctx, "dave")
	assert.NoError(t, err)
	assert.Len(t, byDave, 1)
	assert.Equal(t, "sk3", byDave[0].SkillID)
}

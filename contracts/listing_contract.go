package contracts

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/jamesfranco1/skillstore/models"
	"github.com/jamesfranco1/skillstore/utils"
)

const (
	maxSkillIDLen     = 32
	maxMetadataURILen = 200
)

// ListingContract manages skill listings
type ListingContract struct {
	contractapi.Contract
}

// ListSkill publishes a skill for sale. The caller becomes the creator and
// receives the proceeds of every purchase.
func (l *ListingContract) ListSkill(ctx contractapi.TransactionContextInterface, skillID string, price uint64, metadataURI string) error {
	if len(skillID) > maxSkillIDLen {
		return ErrSkillIDTooLong
	}
	if len(metadataURI) > maxMetadataURILen {
		return ErrMetadataURITooLong
	}
	if price == 0 {
		return ErrInvalidPrice
	}

	creator, err := callerID(ctx)
	if err != nil {
		return err
	}

	// Check if the skill is already listed
	key := utils.GetListingKey(skillID)
	existing, err := ctx.GetStub().GetState(key)
	if err != nil {
		return fmt.Errorf("failed to read listing: %v", err)
	}
	if existing != nil {
		return fmt.Errorf("skill %s is already listed", skillID)
	}

	// Get deterministic timestamp
	timestamp, err := utils.GetTxTimestamp(ctx)
	if err != nil {
		return err
	}

	listing := models.Listing{
		Creator:     creator,
		SkillID:     skillID,
		Price:       price,
		MetadataURI: metadataURI,
		TotalSales:  0,
		IsActive:    true,
		CreatedAt:   timestamp,
	}

	if err := l.putListing(ctx, &listing); err != nil {
		return err
	}

	return emitEvent(ctx, "SkillListed", SkillListedEvent{
		Creator: creator,
		SkillID: skillID,
		Price:   price,
	})
}

// GetListing retrieves a listing by skill ID
func (l *ListingContract) GetListing(ctx contractapi.TransactionContextInterface, skillID string) (*models.Listing, error) {
	key := utils.GetListingKey(skillID)
	listingBytes, err := ctx.GetStub().GetState(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing: %v", err)
	}
	if listingBytes == nil {
		return nil, fmt.Errorf("listing not found: %s", skillID)
	}

	var listing models.Listing
	if err := utils.UnmarshalRecord(utils.RecordListing, listingBytes, &listing); err != nil {
		return nil, err
	}

	return &listing, nil
}

// DeactivateListing takes a skill off sale (creator only). There is no
// operation that reactivates a listing.
func (l *ListingContract) DeactivateListing(ctx contractapi.TransactionContextInterface, skillID string) error {
	listing, err := l.GetListing(ctx, skillID)
	if err != nil {
		return err
	}

	caller, err := callerID(ctx)
	if err != nil {
		return err
	}
	if caller != listing.Creator {
		return ErrUnauthorized
	}

	listing.IsActive = false

	if err := l.putListing(ctx, listing); err != nil {
		return err
	}

	return emitEvent(ctx, "ListingDeactivated", ListingDeactivatedEvent{
		SkillID: listing.SkillID,
		Creator: listing.Creator,
	})
}

// GetActiveListings retrieves all listings currently open for purchase
func (l *ListingContract) GetActiveListings(ctx contractapi.TransactionContextInterface) ([]*models.Listing, error) {
	iterator, err := ctx.GetStub().GetStateByRange(utils.ListingPrefix, utils.ListingPrefix+"\uffff")
	if err != nil {
		return nil, fmt.Errorf("failed to get listing iterator: %v", err)
	}
	defer iterator.Close()

	var listings []*models.Listing
	for iterator.HasNext() {
		queryResponse, err := iterator.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to iterate listings: %v", err)
		}

		var listing models.Listing
		if err := utils.UnmarshalRecord(utils.RecordListing, queryResponse.Value, &listing); err != nil {
			return nil, err
		}

		if listing.IsActive {
			listings = append(listings, &listing)
		}
	}

	return listings, nil
}

// GetListingsByCreator retrieves all listings owned by a creator
func (l *ListingContract) GetListingsByCreator(ctx contractapi.TransactionContextInterface, creator string) ([]*models.Listing, error) {
	iterator, err := ctx.GetStub().GetStateByRange(utils.ListingPrefix, utils.ListingPrefix+"\uffff")
	if err != nil {
		return nil, fmt.Errorf("failed to get listing iterator: %v", err)
	}
	defer iterator.Close()

	var listings []*models.Listing
	for iterator.HasNext() {
		queryResponse, err := iterator.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to iterate listings: %v", err)
		}

		var listing models.Listing
		if err := utils.UnmarshalRecord(utils.RecordListing, queryResponse.Value, &listing); err != nil {
			return nil, err
		}

		if listing.Creator == creator {
			listings = append(listings, &listing)
		}
	}

	return listings, nil
}

func (l *ListingContract) putListing(ctx contractapi.TransactionContextInterface, listing *models.Listing) error {
	listingBytes, err := utils.MarshalRecord(utils.RecordListing, listing)
	if err != nil {
		return err
	}
	return ctx.GetStub().PutState(utils.GetListingKey(listing.SkillID), listingBytes)
}

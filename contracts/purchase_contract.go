package contracts

import (
	"fmt"
	"math/bits"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/jamesfranco1/skillstore/models"
	"github.com/jamesfranco1/skillstore/utils"
)

// PurchaseContract executes skill purchases
type PurchaseContract struct {
	contractapi.Contract
	ConfigContract  *ConfigContract
	ListingContract *ListingContract
	WalletContract  *WalletContract
}

// PurchaseSkill buys a skill for the caller, splitting the price between the
// creator and the platform treasury. The transfers, the receipt and the
// counter updates all belong to one transaction: any failure discards every
// effect. All checks and reads happen before the first write.
func (p *PurchaseContract) PurchaseSkill(ctx contractapi.TransactionContextInterface, skillID, treasury, creator string) error {
	buyer, err := callerID(ctx)
	if err != nil {
		return err
	}

	// Initialize contract references if not set
	if p.ConfigContract == nil {
		p.ConfigContract = &ConfigContract{}
	}
	if p.ListingContract == nil {
		p.ListingContract = &ListingContract{}
	}
	if p.WalletContract == nil {
		p.WalletContract = &WalletContract{}
	}

	listing, err := p.ListingContract.GetListing(ctx, skillID)
	if err != nil {
		return err
	}
	if !listing.IsActive {
		return ErrListingNotActive
	}

	config, err := p.ConfigContract.GetConfig(ctx)
	if err != nil {
		return err
	}
	if treasury != config.Treasury {
		return ErrInvalidTreasury
	}
	if creator != listing.Creator {
		return ErrInvalidCreator
	}

	price := listing.Price
	fee := computeFee(price, config.FeeBasisPoints)
	creatorAmount := price - fee // fee <= price since the rate is capped at 100%

	// A receipt at this key means the buyer already purchased the skill
	receiptKey := utils.GetReceiptKey(buyer, skillID)
	existingReceipt, err := ctx.GetStub().GetState(receiptKey)
	if err != nil {
		return fmt.Errorf("failed to read receipt: %v", err)
	}
	if existingReceipt != nil {
		return fmt.Errorf("receipt already exists for buyer %s and skill %s", buyer, skillID)
	}

	// Reads within a transaction see committed state, not the transaction's
	// own writes, so each wallet is loaded once and written once even when
	// the same identity plays several roles.
	wallets := make(map[string]*models.Wallet)
	loadWallet := func(owner string) (*models.Wallet, error) {
		if wallet, ok := wallets[owner]; ok {
			return wallet, nil
		}
		wallet, err := p.WalletContract.GetWallet(ctx, owner)
		if err != nil {
			return nil, err
		}
		wallets[owner] = wallet
		return wallet, nil
	}

	buyerWallet, err := loadWallet(buyer)
	if err != nil {
		return err
	}
	if buyerWallet.Balance < price {
		return fmt.Errorf("%w: wallet %s holds %d, needs %d", ErrInsufficientFunds, buyer, buyerWallet.Balance, price)
	}

	// Fee transfer to treasury, skipped when the fee rounds to zero
	if fee > 0 {
		treasuryWallet, err := loadWallet(treasury)
		if err != nil {
			return err
		}
		treasuryWallet.Balance, err = checkedAdd(treasuryWallet.Balance, fee)
		if err != nil {
			return err
		}
	}

	// Remainder to the creator
	creatorWallet, err := loadWallet(creator)
	if err != nil {
		return err
	}
	creatorWallet.Balance, err = checkedAdd(creatorWallet.Balance, creatorAmount)
	if err != nil {
		return err
	}

	buyerWallet.Balance -= price

	listing.TotalSales, err = checkedAdd(listing.TotalSales, 1)
	if err != nil {
		return err
	}
	config.TotalSales, err = checkedAdd(config.TotalSales, 1)
	if err != nil {
		return err
	}
	config.TotalFeesCollected, err = checkedAdd(config.TotalFeesCollected, fee)
	if err != nil {
		return err
	}

	// Get deterministic timestamp
	timestamp, err := utils.GetTxTimestamp(ctx)
	if err != nil {
		return err
	}

	// Write the balance movements first, each wallet key exactly once
	for _, owner := range walletWriteOrder(buyer, treasury, creator, fee) {
		wallet := wallets[owner]
		wallet.UpdatedAt = timestamp
		if err := p.WalletContract.putWallet(ctx, wallet); err != nil {
			return err
		}
	}

	receipt := models.Receipt{
		Buyer:       buyer,
		Creator:     listing.Creator,
		SkillID:     skillID,
		PricePaid:   price,
		FeePaid:     fee,
		PurchasedAt: timestamp,
	}
	receiptBytes, err := utils.MarshalRecord(utils.RecordReceipt, receipt)
	if err != nil {
		return err
	}
	if err := ctx.GetStub().PutState(receiptKey, receiptBytes); err != nil {
		return fmt.Errorf("failed to save receipt: %v", err)
	}

	if err := p.ListingContract.putListing(ctx, listing); err != nil {
		return err
	}

	config.UpdatedAt = timestamp
	if err := p.ConfigContract.putConfig(ctx, config); err != nil {
		return err
	}

	return emitEvent(ctx, "SkillPurchased", SkillPurchasedEvent{
		Buyer:   buyer,
		Creator: listing.Creator,
		SkillID: skillID,
		Price:   price,
		Fee:     fee,
	})
}

// GetReceipt retrieves the purchase receipt of one buyer for one skill
func (p *PurchaseContract) GetReceipt(ctx contractapi.TransactionContextInterface, buyer, skillID string) (*models.Receipt, error) {
	key := utils.GetReceiptKey(buyer, skillID)
	receiptBytes, err := ctx.GetStub().GetState(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read receipt: %v", err)
	}
	if receiptBytes == nil {
		return nil, fmt.Errorf("receipt not found for buyer %s and skill %s", buyer, skillID)
	}

	var receipt models.Receipt
	if err := utils.UnmarshalRecord(utils.RecordReceipt, receiptBytes, &receipt); err != nil {
		return nil, err
	}

	return &receipt, nil
}

// GetReceiptsByBuyer retrieves all receipts held by a buyer
func (p *PurchaseContract) GetReceiptsByBuyer(ctx contractapi.TransactionContextInterface, buyer string) ([]*models.Receipt, error) {
	startKey := fmt.Sprintf("%s%s_", utils.ReceiptPrefix, buyer)
	endKey := fmt.Sprintf("%s%s_\uffff", utils.ReceiptPrefix, buyer)

	iterator, err := ctx.GetStub().GetStateByRange(startKey, endKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt iterator: %v", err)
	}
	defer iterator.Close()

	var receipts []*models.Receipt
	for iterator.HasNext() {
		queryResponse, err := iterator.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to iterate receipts: %v", err)
		}

		var receipt models.Receipt
		if err := utils.UnmarshalRecord(utils.RecordReceipt, queryResponse.Value, &receipt); err != nil {
			return nil, err
		}

		receipts = append(receipts, &receipt)
	}

	return receipts, nil
}

// computeFee returns floor(price * feeBasisPoints / 10000). The product is
// taken in 128 bits so that a large price cannot overflow before the
// division; the quotient always fits because fee <= price.
func computeFee(price uint64, feeBasisPoints uint16) uint64 {
	hi, lo := bits.Mul64(price, uint64(feeBasisPoints))
	fee, _ := bits.Div64(hi, lo, MaxFeeBasisPoints)
	return fee
}

// walletWriteOrder lists the wallet owners touched by a purchase in a fixed
// order, without duplicates
func walletWriteOrder(buyer, treasury, creator string, fee uint64) []string {
	owners := []string{buyer}
	if fee > 0 && treasury != buyer {
		owners = append(owners, treasury)
	}
	if creator != buyer && (fee == 0 || creator != treasury) {
		owners = append(owners, creator)
	}
	return owners
}

package contracts

import (
	"fmt"
	"math"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/jamesfranco1/skillstore/models"
	"github.com/jamesfranco1/skillstore/utils"
)

// WalletContract manages native-currency balances. It is the value-transfer
// collaborator of the purchase operation: balance movements live in the same
// transaction as the record mutations, so they commit or roll back together.
type WalletContract struct {
	contractapi.Contract
}

// InitWallet creates a wallet for an owner with an opening balance
func (w *WalletContract) InitWallet(ctx contractapi.TransactionContextInterface, owner string, balance uint64) error {
	key := utils.GetWalletKey(owner)
	existing, err := ctx.GetStub().GetState(key)
	if err != nil {
		return fmt.Errorf("failed to read wallet: %v", err)
	}
	if existing != nil {
		return fmt.Errorf("wallet already exists for %s", owner)
	}

	// Get deterministic timestamp
	timestamp, err := utils.GetTxTimestamp(ctx)
	if err != nil {
		return err
	}

	wallet := models.Wallet{
		Owner:     owner,
		Balance:   balance,
		UpdatedAt: timestamp,
	}

	return w.putWallet(ctx, &wallet)
}

// GetWallet retrieves a wallet by owner
func (w *WalletContract) GetWallet(ctx contractapi.TransactionContextInterface, owner string) (*models.Wallet, error) {
	key := utils.GetWalletKey(owner)
	walletBytes, err := ctx.GetStub().GetState(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet: %v", err)
	}
	if walletBytes == nil {
		return nil, fmt.Errorf("wallet not found for %s", owner)
	}

	var wallet models.Wallet
	if err := utils.UnmarshalRecord(utils.RecordWallet, walletBytes, &wallet); err != nil {
		return nil, err
	}

	return &wallet, nil
}

// Transfer moves amount from the caller's wallet to the recipient's wallet
func (w *WalletContract) Transfer(ctx contractapi.TransactionContextInterface, to string, amount uint64) error {
	from, err := callerID(ctx)
	if err != nil {
		return err
	}
	// Two read-modify-writes of the same key would clobber each other within
	// one transaction, so a self transfer is rejected outright.
	if from == to {
		return fmt.Errorf("cannot transfer to own wallet")
	}

	fromWallet, err := w.GetWallet(ctx, from)
	if err != nil {
		return err
	}
	if fromWallet.Balance < amount {
		return fmt.Errorf("%w: wallet %s holds %d, needs %d", ErrInsufficientFunds, from, fromWallet.Balance, amount)
	}

	toWallet, err := w.GetWallet(ctx, to)
	if err != nil {
		return err
	}

	newBalance, err := checkedAdd(toWallet.Balance, amount)
	if err != nil {
		return err
	}

	timestamp, err := utils.GetTxTimestamp(ctx)
	if err != nil {
		return err
	}

	fromWallet.Balance -= amount
	fromWallet.UpdatedAt = timestamp
	toWallet.Balance = newBalance
	toWallet.UpdatedAt = timestamp

	if err := w.putWallet(ctx, fromWallet); err != nil {
		return err
	}
	return w.putWallet(ctx, toWallet)
}

func (w *WalletContract) putWallet(ctx contractapi.TransactionContextInterface, wallet *models.Wallet) error {
	walletBytes, err := utils.MarshalRecord(utils.RecordWallet, wallet)
	if err != nil {
		return err
	}
	return ctx.GetStub().PutState(utils.GetWalletKey(wallet.Owner), walletBytes)
}

// checkedAdd adds two amounts, failing instead of wrapping on overflow
func checkedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrArithmeticOverflow
	}
	return a + b, nil
}

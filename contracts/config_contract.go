package contracts

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/jamesfranco1/skillstore/models"
	"github.com/jamesfranco1/skillstore/utils"
)

// MaxFeeBasisPoints is the fee denominator: 10000 basis points = 100%
const MaxFeeBasisPoints = 10000

// ConfigContract manages the singleton platform configuration
type ConfigContract struct {
	contractapi.Contract
}

// Initialize creates the platform config. The caller becomes the admin.
// Called once; a second call fails because the config record already exists.
func (c *ConfigContract) Initialize(ctx contractapi.TransactionContextInterface, treasury string, feeBasisPoints uint16) error {
	if feeBasisPoints > MaxFeeBasisPoints {
		return ErrInvalidFee
	}

	admin, err := callerID(ctx)
	if err != nil {
		return err
	}

	// Check if config already exists
	existing, err := ctx.GetStub().GetState(utils.GetConfigKey())
	if err != nil {
		return fmt.Errorf("failed to read config: %v", err)
	}
	if existing != nil {
		return fmt.Errorf("config already exists")
	}

	// Get deterministic timestamp
	timestamp, err := utils.GetTxTimestamp(ctx)
	if err != nil {
		return err
	}

	config := models.Config{
		Admin:              admin,
		Treasury:           treasury,
		FeeBasisPoints:     feeBasisPoints,
		TotalSales:         0,
		TotalFeesCollected: 0,
		UpdatedAt:          timestamp,
	}

	if err := c.putConfig(ctx, &config); err != nil {
		return err
	}

	return emitEvent(ctx, "ConfigInitialized", ConfigInitializedEvent{
		Admin:          config.Admin,
		Treasury:       config.Treasury,
		FeeBasisPoints: config.FeeBasisPoints,
	})
}

// GetConfig retrieves the platform configuration
func (c *ConfigContract) GetConfig(ctx contractapi.TransactionContextInterface) (*models.Config, error) {
	configBytes, err := ctx.GetStub().GetState(utils.GetConfigKey())
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %v", err)
	}
	if configBytes == nil {
		return nil, fmt.Errorf("config not initialized")
	}

	var config models.Config
	if err := utils.UnmarshalRecord(utils.RecordConfig, configBytes, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// UpdateTreasury changes the wallet that receives fees (admin only)
func (c *ConfigContract) UpdateTreasury(ctx contractapi.TransactionContextInterface, newTreasury string) error {
	config, err := c.GetConfig(ctx)
	if err != nil {
		return err
	}

	caller, err := callerID(ctx)
	if err != nil {
		return err
	}
	if caller != config.Admin {
		return ErrUnauthorized
	}

	// Capture the old value before overwriting it
	oldTreasury := config.Treasury
	config.Treasury = newTreasury

	timestamp, err := utils.GetTxTimestamp(ctx)
	if err != nil {
		return err
	}
	config.UpdatedAt = timestamp

	if err := c.putConfig(ctx, config); err != nil {
		return err
	}

	return emitEvent(ctx, "TreasuryUpdated", TreasuryUpdatedEvent{
		OldTreasury: oldTreasury,
		NewTreasury: newTreasury,
	})
}

// UpdateFee changes the platform fee rate (admin only)
func (c *ConfigContract) UpdateFee(ctx contractapi.TransactionContextInterface, newFeeBasisPoints uint16) error {
	if newFeeBasisPoints > MaxFeeBasisPoints {
		return ErrInvalidFee
	}

	config, err := c.GetConfig(ctx)
	if err != nil {
		return err
	}

	caller, err := callerID(ctx)
	if err != nil {
		return err
	}
	if caller != config.Admin {
		return ErrUnauthorized
	}

	oldFee := config.FeeBasisPoints
	config.FeeBasisPoints = newFeeBasisPoints

	timestamp, err := utils.GetTxTimestamp(ctx)
	if err != nil {
		return err
	}
	config.UpdatedAt = timestamp

	if err := c.putConfig(ctx, config); err != nil {
		return err
	}

	return emitEvent(ctx, "FeeUpdated", FeeUpdatedEvent{
		OldFee: oldFee,
		NewFee: newFeeBasisPoints,
	})
}

func (c *ConfigContract) putConfig(ctx contractapi.TransactionContextInterface, config *models.Config) error {
	configBytes, err := utils.MarshalRecord(utils.RecordConfig, config)
	if err != nil {
		return err
	}
	return ctx.GetStub().PutState(utils.GetConfigKey(), configBytes)
}

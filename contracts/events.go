package contracts

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// Event payloads, one per successful operation. Events are delivered only
// when the transaction commits, so consumers never see one for a failed
// operation.

// ConfigInitializedEvent is emitted once when the platform config is created
type ConfigInitializedEvent struct {
	Admin          string `json:"admin"`
	Treasury       string `json:"treasury"`
	FeeBasisPoints uint16 `json:"feeBasisPoints"`
}

// TreasuryUpdatedEvent reports a treasury change with the pre-update value
type TreasuryUpdatedEvent struct {
	OldTreasury string `json:"oldTreasury"`
	NewTreasury string `json:"newTreasury"`
}

// FeeUpdatedEvent reports a fee rate change
type FeeUpdatedEvent struct {
	OldFee uint16 `json:"oldFee"`
	NewFee uint16 `json:"newFee"`
}

// SkillListedEvent is emitted when a creator publishes a skill
type SkillListedEvent struct {
	Creator string `json:"creator"`
	SkillID string `json:"skillId"`
	Price   uint64 `json:"price"`
}

// SkillPurchasedEvent is emitted once per completed purchase
type SkillPurchasedEvent struct {
	Buyer   string `json:"buyer"`
	Creator string `json:"creator"`
	SkillID string `json:"skillId"`
	Price   uint64 `json:"price"`
	Fee     uint64 `json:"fee"`
}

// ListingDeactivatedEvent is emitted when a creator takes a skill off sale
type ListingDeactivatedEvent struct {
	SkillID string `json:"skillId"`
	Creator string `json:"creator"`
}

func emitEvent(ctx contractapi.TransactionContextInterface, name string, payload interface{}) error {
	eventJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %v", name, err)
	}
	return ctx.GetStub().SetEvent(name, eventJSON)
}

package utils

import (
	"fmt"
	"time"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// GetTxTimestamp returns the deterministic transaction timestamp
// This ensures all endorsing peers return the same timestamp
func GetTxTimestamp(ctx contractapi.TransactionContextInterface) (time.Time, error) {
	txTimestamp, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get transaction timestamp: %v", err)
	}
	return time.Unix(txTimestamp.Seconds, int64(txTimestamp.Nanos)), nil
}

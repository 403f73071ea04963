package utils

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// Record type names, used to derive the discriminator of each record
const (
	RecordConfig  = "Config"
	RecordListing = "Listing"
	RecordReceipt = "Receipt"
	RecordWallet  = "Wallet"
)

const discriminatorLen = 8

// Discriminator returns the 8-byte prefix that identifies a record type on
// the wire: sha256("account:" + type), truncated
func Discriminator(recordType string) []byte {
	sum := sha256.Sum256([]byte("account:" + recordType))
	return sum[:discriminatorLen]
}

// MarshalRecord encodes v as JSON prefixed with the record type discriminator
func MarshalRecord(recordType string, v interface{}) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s record: %v", recordType, err)
	}
	return append(Discriminator(recordType), payload...), nil
}

// UnmarshalRecord checks the discriminator and decodes the payload into v
func UnmarshalRecord(recordType string, data []byte, v interface{}) error {
	if len(data) < discriminatorLen {
		return fmt.Errorf("%s record is truncated", recordType)
	}
	if !bytes.Equal(data[:discriminatorLen], Discriminator(recordType)) {
		return fmt.Errorf("record discriminator does not match %s", recordType)
	}
	if err := json.Unmarshal(data[discriminatorLen:], v); err != nil {
		return fmt.Errorf("failed to unmarshal %s record: %v", recordType, err)
	}
	return nil
}

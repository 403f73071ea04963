package utils

import "fmt"

// Key prefixes for different record types. Addresses are derived from these
// namespace tags plus the record's identifying fields, so any reimplementation
// arrives at the same key for the same record.
const (
	ConfigKey     = "config"
	ListingPrefix = "listing_"
	ReceiptPrefix = "receipt_"
	WalletPrefix  = "wallet_"
)

// GetConfigKey returns the fixed key of the singleton config record
func GetConfigKey() string {
	return ConfigKey
}

// GetListingKey returns the key for a skill listing
func GetListingKey(skillID string) string {
	return fmt.Sprintf("%s%s", ListingPrefix, skillID)
}

// GetReceiptKey returns the key for a purchase receipt. It is derived from
// both the buyer and the skill, so one buyer holds at most one receipt per
// skill.
func GetReceiptKey(buyer, skillID string) string {
	return fmt.Sprintf("%s%s_%s", ReceiptPrefix, buyer, skillID)
}

// GetWalletKey returns the key for an actor's wallet
func GetWalletKey(owner string) string {
	return fmt.Sprintf("%s%s", WalletPrefix, owner)
}

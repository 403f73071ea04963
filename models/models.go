package models

import "time"

// Config is the singleton platform configuration
type Config struct {
	Admin              string    `json:"admin"`
	Treasury           string    `json:"treasury"`
	FeeBasisPoints     uint16    `json:"feeBasisPoints"` // 500 = 5%, max 10000
	TotalSales         uint64    `json:"totalSales"`
	TotalFeesCollected uint64    `json:"totalFeesCollected"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Listing represents a skill published for sale
type Listing struct {
	Creator     string    `json:"creator"`
	SkillID     string    `json:"skillId"`
	Price       uint64    `json:"price"` // smallest currency unit
	MetadataURI string    `json:"metadataUri"`
	TotalSales  uint64    `json:"totalSales"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Receipt is the write-once proof of purchase for one buyer and one skill
type Receipt struct {
	Buyer       string    `json:"buyer"`
	Creator     string    `json:"creator"`
	SkillID     string    `json:"skillId"`
	PricePaid   uint64    `json:"pricePaid"`
	FeePaid     uint64    `json:"feePaid"`
	PurchasedAt time.Time `json:"purchasedAt"`
}

// Wallet holds an actor's native-currency balance
type Wallet struct {
	Owner     string    `json:"owner"`
	Balance   uint64    `json:"balance"`
	UpdatedAt time.Time `json:"updatedAt"`
}

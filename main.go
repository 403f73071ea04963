package main

import (
	"fmt"
	"log"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/jamesfranco1/skillstore/contracts"
)

func main() {
	// Create config contract
	configContract := new(contracts.ConfigContract)

	// Create listing contract
	listingContract := new(contracts.ListingContract)

	// Create wallet contract
	walletContract := new(contracts.WalletContract)

	// Create purchase contract with its collaborator references
	purchaseContract := &contracts.PurchaseContract{
		ConfigContract:  configContract,
		ListingContract: listingContract,
		WalletContract:  walletContract,
	}

	// Create chaincode
	chaincode, err := contractapi.NewChaincode(
		configContract,
		listingContract,
		walletContract,
		purchaseContract,
	)

	if err != nil {
		log.Panicf("Error creating skillstore chaincode: %v", err)
	}

	if err := chaincode.Start(); err != nil {
		fmt.Printf("Error starting skillstore chaincode: %v", err)
	}
}

package contracts

import "errors"

// Failure codes returned by the contract operations. An error returned from
// any operation aborts the whole transaction, so no partial state is ever
// committed.
var (
	ErrInvalidFee         = errors.New("fee basis points must be <= 10000")
	ErrSkillIDTooLong     = errors.New("skill id must be <= 32 characters")
	ErrMetadataURITooLong = errors.New("metadata uri must be <= 200 characters")
	ErrInvalidPrice       = errors.New("price must be greater than 0")
	ErrListingNotActive   = errors.New("listing is not active")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidTreasury    = errors.New("invalid treasury account")
	ErrInvalidCreator     = errors.New("invalid creator account")
	ErrInsufficientFunds  = errors.New("insufficient balance")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)

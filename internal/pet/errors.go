package pet

import "errors"

// Sentinel errors returned by the store and the game actions. Callers
// distinguish them with errors.Is.
var (
	ErrNotFound      = errors.New("pet not found")
	ErrAlreadyExists = errors.New("pet already exists")
	ErrInvalidRange  = errors.New("value must be between 0 and 100")
	ErrNameTooLong   = errors.New("name exceeds 15 characters")
	ErrItemNotFound  = errors.New("item not in inventory")

	ErrAlreadyFull    = errors.New("stat is already at maximum")
	ErrNotEnoughMoney = errors.New("not enough money")
	ErrNotEnoughEnergy = errors.New("not enough energy")
	ErrAlreadyOwned   = errors.New("item already owned")
	ErrNotWearable    = errors.New("item is not owned")
)

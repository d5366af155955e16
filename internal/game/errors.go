package game

import "errors"

var (
	ErrNotInitialized  = errors.New("life not initialized")
	ErrGameOver        = errors.New("life is already over")
	ErrNoCardsSelected = errors.New("no beneficial cards selected")
	ErrCardNotInHand   = errors.New("card not in current hand")
	ErrWrongCategory   = errors.New("card has the wrong category")
	ErrDuplicateCard   = errors.New("card selected twice")
	ErrNoName          = errors.New("player name is required")
	ErrNoHand          = errors.New("no cards drawn this turn")
	ErrTurnInProgress  = errors.New("turn already in progress")
	ErrAlreadyTicked   = errors.New("status effects already applied this turn")
)

// IsInvalidSelection reports whether err rejects the player's choice of
// cards. The hand stays in place, so the player may choose again.
func IsInvalidSelection(err error) bool {
	return errors.Is(err, ErrNoCardsSelected) ||
		errors.Is(err, ErrCardNotInHand) ||
		errors.Is(err, ErrWrongCategory) ||
		errors.Is(err, ErrDuplicateCard)
}

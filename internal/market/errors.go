package market

import "errors"

var ErrInvalidPhase = errors.New("operation not valid in current phase")
var ErrNotYourTurn = errors.New("not your turn")
var ErrPlayerUnavailable = errors.New("player unavailable")
var ErrBidTooLow = errors.New("bid too low")
var ErrTimerExpired = errors.New("auction timer expired")
var ErrInsufficientBudget = errors.New("insufficient budget")
var ErrSlotFull = errors.New("roster slot full")
var ErrMemberNotActive = errors.New("member not active")
var ErrNotAdmin = errors.New("admin role required")
var ErrSessionCompleted = errors.New("session already completed")
var ErrUnsupportedCommand = errors.New("unsupported command")

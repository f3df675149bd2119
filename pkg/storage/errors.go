package storage

import "errors"

// ErrAccountNotFound is returned when no account exists for the given ID.
var ErrAccountNotFound = errors.New("account not found")

// ErrAccountExists is returned when creating an account whose ID is already taken.
var ErrAccountExists = errors.New("account already exists")

// ErrEventNotFound is returned when no event exists for the given ID.
var ErrEventNotFound = errors.New("event not found")

// ErrWagerNotFound is returned when no wager exists for the given ID.
var ErrWagerNotFound = errors.New("wager not found")

// ErrInsufficientFunds is returned when a wallet has an insufficient balance for a debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrEventClosed is returned when an event no longer accepts wagers.
var ErrEventClosed = errors.New("event is no longer accepting bets")

// ErrAlreadySettled is returned when a wager has already left the pending state.
var ErrAlreadySettled = errors.New("wager has already been settled")

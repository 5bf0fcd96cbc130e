package model

import "errors"

// Common errors used across the application
var (
	// Input errors
	ErrInvalidPlayerID = errors.New("invalid player id")
	ErrInvalidTeam     = errors.New("invalid team: must be t or ct")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player is already connected")

	// Console errors
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("wrong number of arguments")
)

package model

import "github.com/cockroachdb/errors"

var (
	ErrUnknownItem     = errors.New("model: unknown item id")
	ErrDuplicateItem   = errors.New("model: duplicate item id in registry")
	ErrInvalidSnapshot = errors.New("model: invalid inventory snapshot")
	ErrSlotOutOfRange  = errors.New("model: slot index out of range")
	ErrSlotEmpty       = errors.New("model: slot is empty")
	ErrSlotOccupied    = errors.New("model: slot is occupied")
)

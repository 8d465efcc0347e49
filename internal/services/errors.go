package services

import "errors"

var (
	ErrForbidden         = errors.New("forbidden")
	ErrBanned            = errors.New("banned from this group")
	ErrAlreadyMember     = errors.New("already on the roster")
	ErrGroupFull         = errors.New("group is full")
	ErrLastAdmin         = errors.New("the last admin cannot leave")
	ErrNotMember         = errors.New("not on the roster")
	ErrInvalidTransition = errors.New("invalid role transition")
	ErrInvalidKind       = errors.New("unknown group kind")
)

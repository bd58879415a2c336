package domain

import "errors"

var (
	ErrPollNotFound = errors.New("poll not found")
	ErrAlreadyVoted = errors.New("user already voted")
)

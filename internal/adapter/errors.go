package adapter

import "errors"

var (
	ErrEmptyAddress      = errors.New("ipfs address is empty")
	ErrMalformedResponse = errors.New("malformed ipfs response")
)

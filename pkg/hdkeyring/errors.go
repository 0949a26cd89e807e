package hdkeyring

import "errors"

var (
	// ErrInvalidNumberOfAccounts ...
	ErrInvalidNumberOfAccounts = errors.New("number of accounts must not be negative")
	// ErrInvalidMaxDerivations ...
	ErrInvalidMaxDerivations = errors.New("max derivations must not be negative")
	// ErrInvalidBytePrefix ...
	ErrInvalidBytePrefix = errors.New("byte prefix must be a 2 hex digits string")
	// ErrInvalidByteRange ...
	ErrInvalidByteRange = errors.New(
		"byte range bounds must be 2 hex digits strings with start <= end",
	)
	// ErrSearchExhausted is returned when a prefix or byte range search probed
	// the max number of children without satisfying its criteria. Nothing is
	// added to the keyring in that case.
	ErrSearchExhausted = errors.New("max number of derivations reached")
)

package bitrun

import "golang.org/x/xerrors"

var (
	// ErrDomainOverflow is returned when the sum of an input's runs, or
	// the universe extension NOT appends, would exceed the configured
	// universe bound.
	ErrDomainOverflow = xerrors.New("bitrun: sum of runs exceeds universe bound")

	// ErrInvalidRun is returned when a run value is negative or not an
	// integer. Rejected eagerly, at the API boundary, before any merge
	// work begins.
	ErrInvalidRun = xerrors.New("bitrun: run value is negative or non-integer")
)

package discovery

import "errors"

var (
	// ErrNoCandidateURL is returned when no candidate URL can be formed for the domain
	ErrNoCandidateURL = errors.New("no candidate policy URL")
)

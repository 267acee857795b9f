package service

import "errors"

// Domain rule violations. The messages are recorded verbatim as expected
// outputs in case tables, so they must not be wrapped.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyProhibited = errors.New("user already prohibited")
	ErrUserNotProhibited     = errors.New("user not prohibited")
	ErrProhibitAdmin         = errors.New("cannot prohibit administrator")

	ErrCommentEmpty    = errors.New("comment content is empty")
	ErrCommentTooLong  = errors.New("comment length exceeded")
	ErrReportedMissing = errors.New("reported user not found")
	ErrInvalidTargets  = errors.New("invalid number of input ids")
	ErrSelfComplaint   = errors.New("cannot complain oneself")
	ErrAppealEmpty     = errors.New("appeal content is empty")
	ErrAppealTooLong   = errors.New("appeal length exceeded")
	ErrInvalidPage     = errors.New("invalid page range")
)

package calculator

import "errors"

var (
	// ErrInvalidGroupState is returned when balances are requested for a group
	// that cannot be split, such as a group without members.
	ErrInvalidGroupState = errors.New("invalid group state")

	// ErrValidation is returned for malformed input: negative or sub-cent
	// amounts, unknown member IDs, or a settlement a member makes to themself.
	ErrValidation = errors.New("validation error")

	// ErrReferentialInconsistency marks an expense whose payer is no longer a
	// member of the group. It is advisory unless strict membership is requested.
	ErrReferentialInconsistency = errors.New("payer is not a current group member")
)

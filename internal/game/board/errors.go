package board

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a legality failure. Every failure is a recoverable
// result carrying a reason; InvariantViolation marks internal states that
// valid input can never reach.
type ErrorKind int

const (
	MovementIllegal ErrorKind = iota
	AttackIllegal
	SpawnIllegal
	SpellOrAbilityIllegal
	UndoIllegal
	InvariantViolation
)

func (k ErrorKind) String() string {
	switch k {
	case MovementIllegal:
		return "MOVEMENT_ILLEGAL"
	case AttackIllegal:
		return "ATTACK_ILLEGAL"
	case SpawnIllegal:
		return "SPAWN_ILLEGAL"
	case SpellOrAbilityIllegal:
		return "SPELL_OR_ABILITY_ILLEGAL"
	case UndoIllegal:
		return "UNDO_ILLEGAL"
	case InvariantViolation:
		return "INVARIANT_VIOLATION"
	}
	return "UNKNOWN"
}

// RuleError is a typed legality failure.
type RuleError struct {
	Kind   ErrorKind
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// KindOf extracts the error kind from err, if it is a RuleError.
func KindOf(err error) (ErrorKind, bool) {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is a RuleError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func illegalf(kind ErrorKind, format string, args ...any) *RuleError {
	return &RuleError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func invariantf(format string, args ...any) *RuleError {
	return illegalf(InvariantViolation, format, args...)
}

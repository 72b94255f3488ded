package dnd

import "slices"

// Acceptor inspects a session and returns the single format the target
// will act on, or false to reject the drag.
type Acceptor func(s *Session) (Format, bool)

// Validator gets the winning format and may still reject the drop, for
// example a folder dropped inside its own subtree.
type Validator func(s *Session, f Format) bool

// Accept builds the standard acceptor. The first format in formats that
// any item of the session supports wins; validate, if set, is then asked
// about that one format only.
func Accept(formats []Format, validate Validator) Acceptor {
	prefs := slices.Clone(formats)
	return func(s *Session) (Format, bool) {
		if s == nil {
			return "", false
		}
		for _, f := range prefs {
			if !s.Has(f) {
				continue
			}
			if validate != nil && !validate(s, f) {
				return "", false
			}
			return f, true
		}
		return "", false
	}
}

// RejectSelf refuses a drop onto one of the dragged elements.
func RejectSelf(targetID string) Validator {
	return func(s *Session, f Format) bool {
		return !s.Contains(f, targetID)
	}
}

// AllOf passes only when every non-nil validator passes.
func AllOf(validators ...Validator) Validator {
	return func(s *Session, f Format) bool {
		for _, v := range validators {
			if v != nil && !v(s, f) {
				return false
			}
		}
		return true
	}
}

package budget

import "fmt"

// keyedState collects the named fields of a keyed header. Both keyed decoders feed
// it in input order and finish with the same checks.
type keyedState struct {
	hasFlags bool
	flags    BudgetFlags
	seen     BudgetFlags
	params   BudgetParameters
}

func (s *keyedState) setFlags(v uint64) error {
	if s.hasFlags {
		return flagsError(ErrDuplicateField)
	}
	if v > 0xff {
		return flagsError(fmt.Errorf("%w: %d does not fit a byte", ErrInvalidValue, v))
	}
	s.hasFlags = true
	s.flags = BudgetFlags(v)
	return nil
}

func (s *keyedState) setField(f Field, v uint64) error {
	if s.seen.Has(f.Flag()) {
		return fieldError(f, ErrDuplicateField)
	}
	if v > f.Max() {
		return fieldError(f, fmt.Errorf("%w: %d overflows %d bytes", ErrInvalidValue, v, f.Width()))
	}
	s.seen |= f.Flag()
	s.params.set(f, v)
	return nil
}

// key is a resolved name of a keyed record: either the flags or a parameter.
type key struct {
	flags bool
	field Field
}

func parseKey(name string) (key, error) {
	if name == flagsField {
		return key{flags: true}, nil
	}
	f, ok := lookupField(name)
	if !ok {
		return key{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return key{field: f}, nil
}

// wrap attributes err to the field named by k.
func (k key) wrap(err error) *FieldError {
	if k.flags {
		return flagsError(err)
	}
	return fieldError(k.field, err)
}

func (s *keyedState) set(k key, v uint64) error {
	if k.flags {
		return s.setFlags(v)
	}
	return s.setField(k.field, v)
}

// finish validates the collected fields. Missing flags fail with ErrMissingField,
// reserved bits with ErrInvalidFlags, and any disagreement between flags and named
// fields with ErrInconsistentFlags.
func (s *keyedState) finish() (BudgetHeader, error) {
	if !s.hasFlags {
		return BudgetHeader{}, flagsError(ErrMissingField)
	}
	return seal(s.flags, s.params, ErrInconsistentFlags)
}

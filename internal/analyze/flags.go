package analyze

// Flags is the aggregate bump state accumulated over a history walk.
// Flags raise monotonically: a major seen later never erases a minor
// seen earlier. The zero value is the empty aggregate.
type Flags struct {
	Major bool
	Minor bool
	Patch bool
}

// With returns a copy of f with the flag for the given category raised.
func (f Flags) With(c Category) Flags {
	switch c {
	case CategoryMajor:
		f.Major = true
	case CategoryMinor:
		f.Minor = true
	case CategoryPatch:
		f.Patch = true
	}
	return f
}

// Any reports whether at least one bump category was observed.
func (f Flags) Any() bool {
	return f.Major || f.Minor || f.Patch
}

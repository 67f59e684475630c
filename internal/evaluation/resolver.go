package evaluation

// ActiveSet holds the dependent fields whose governing condition holds.
type ActiveSet map[string]bool

// Resolve computes which dependent fields are currently required. It is the
// single source for both the validator and the presentation view.
func Resolve(v Values) ActiveSet {
	active := make(ActiveSet, len(rules))
	for _, r := range rules {
		if t, ok := v.Token(r.Governing); ok && t == r.Trigger {
			active[r.Dependent] = true
		}
	}
	return active
}

// IsActive reports whether name is relevant for v. Fields that no rule
// governs are always active.
func (a ActiveSet) IsActive(name string) bool {
	if !IsDependent(name) {
		return true
	}
	return a[name]
}

// IsRequired reports whether name must hold a value for v.
func (a ActiveSet) IsRequired(name string) bool {
	if IsDependent(name) {
		return a[name]
	}
	f, ok := Lookup(name)
	return ok && f.Required
}

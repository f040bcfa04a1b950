package observable

// registry is an ordered set of observers subscribed to one key (a property
// name or a modification type). Entries keep registration order, never
// contain duplicate live handles, and dead entries (observers whose weak
// owner was collected) are swept on access. A registry is not safe for
// concurrent use on its own; the owning container serializes access through
// its instance lock.
type registry struct {
	entries []*Observer
}

// add appends obs unless it is already present. Reports whether the set
// changed. Dead entries encountered on the way are swept.
func (r *registry) add(obs *Observer) bool {
	r.sweep()

	for _, e := range r.entries {
		if e == obs {
			return false
		}
	}

	r.entries = append(r.entries, obs)
	return true
}

// remove deletes obs, preserving the order of the remaining entries.
// Reports whether obs was present.
func (r *registry) remove(obs *Observer) bool {
	for i, e := range r.entries {
		if e == obs {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}

	return false
}

// sweep drops entries whose owner has been collected, in place, preserving
// order. Returns the number of entries dropped.
func (r *registry) sweep() int {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.live() {
			kept = append(kept, e)
		}
	}

	swept := len(r.entries) - len(kept)
	for i := len(kept); i < len(r.entries); i++ {
		r.entries[i] = nil
	}
	r.entries = kept

	return swept
}

// snapshot sweeps dead entries and returns a copy of the live ones, so that
// dispatch iterates a stable view even if a callback mutates the registry.
func (r *registry) snapshot() ([]*Observer, int) {
	swept := r.sweep()

	out := make([]*Observer, len(r.entries))
	copy(out, r.entries)

	return out, swept
}

// hasOldNew reports whether any live entry declared the two-argument arity.
// Collections use this to decide whether before/after snapshots are needed.
func (r *registry) hasOldNew() bool {
	for _, e := range r.entries {
		if e.kind == arityOldNew && e.live() {
			return true
		}
	}

	return false
}

func (r *registry) empty() bool {
	return len(r.entries) == 0
}

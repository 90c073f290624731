package extract

// Groups classifies property names by which accessors were discovered.
// Each group keeps first-seen order: the getter scan contributes names
// first, then setters that introduce a name no getter declared.
type Groups struct {
	ReadWrite []string
	ReadOnly  []string
}

// Classify merges getter and setter names into property groups. A name
// with both accessors is read-write; getter only is read-only; setter
// only also lands in read-write, even though no getter exists for it —
// the generated getter shim then calls an undeclared member and fails
// at native compile time. That behavior is kept as-is.
func Classify(getters, setters []Member) Groups {
	type presence struct{ get, set bool }
	order := make([]string, 0, len(getters)+len(setters))
	seen := make(map[string]*presence, len(getters)+len(setters))

	add := func(name string, getter bool) {
		p := seen[name]
		if p == nil {
			p = &presence{}
			seen[name] = p
			order = append(order, name)
		}
		if getter {
			p.get = true
		} else {
			p.set = true
		}
	}
	for _, g := range getters {
		add(g.Name, true)
	}
	for _, s := range setters {
		add(s.Name, false)
	}

	var groups Groups
	for _, name := range order {
		if seen[name].set {
			groups.ReadWrite = append(groups.ReadWrite, name)
		} else {
			groups.ReadOnly = append(groups.ReadOnly, name)
		}
	}
	return groups
}

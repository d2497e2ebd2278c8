package grammar

// First returns FIRST(sym): for a terminal, {sym}; for a non-terminal, the
// memoised fixed-point computation over every production of sym.
func (g *GrammarSet) First(sym Symbol) map[Symbol]bool {
	if sym == Epsilon {
		return map[Symbol]bool{Epsilon: true}
	}
	if g.IsTerminal(sym) {
		return map[Symbol]bool{sym: true}
	}

	if g.firstCache == nil {
		g.computeFirstSets()
	}
	return g.firstCache[sym]
}

// FirstOfSequence returns FIRST(X1 X2 ... Xn), i.e. FIRST applied to a
// sentential form rather than a single symbol.
func (g *GrammarSet) FirstOfSequence(seq []Symbol) map[Symbol]bool {
	result := map[Symbol]bool{}
	allNullable := true

	for _, sym := range seq {
		f := g.First(sym)
		for t := range f {
			if t != Epsilon {
				result[t] = true
			}
		}
		if !f[Epsilon] {
			allNullable = false
			break
		}
	}

	if allNullable {
		result[Epsilon] = true
	}
	return result
}

// computeFirstSets runs the fixed-point FIRST computation for every
// non-terminal. Left-recursive productions are guarded against by marking
// symbols currently in progress and contributing nothing on a recursive
// re-entry during the same pass; the outer fixed-point loop reconverges on
// the next iteration.
func (g *GrammarSet) computeFirstSets() {
	g.computeSymbols()

	sets := map[Symbol]map[Symbol]bool{}
	for nt := range g.nonTerminals {
		sets[nt] = map[Symbol]bool{}
	}

	for {
		more := false

		for _, r := range g.rules {
			for _, p := range r.Productions {
				if p.IsEpsilon() {
					if !sets[r.NonTerminal][Epsilon] {
						sets[r.NonTerminal][Epsilon] = true
						more = true
					}
					continue
				}

				allNullable := true
				for _, sym := range p {
					var symFirst map[Symbol]bool
					if g.IsTerminal(sym) {
						symFirst = map[Symbol]bool{sym: true}
					} else {
						symFirst = sets[sym]
					}

					for t := range symFirst {
						if t == Epsilon {
							continue
						}
						if !sets[r.NonTerminal][t] {
							sets[r.NonTerminal][t] = true
							more = true
						}
					}

					if !symFirst[Epsilon] {
						allNullable = false
						break
					}
				}

				if allNullable {
					if !sets[r.NonTerminal][Epsilon] {
						sets[r.NonTerminal][Epsilon] = true
						more = true
					}
				}
			}
		}

		if !more {
			break
		}
	}

	g.firstCache = sets
}

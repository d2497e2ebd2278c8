package grammar

// Follow returns FOLLOW(nt) for a non-terminal nt.
func (g *GrammarSet) Follow(nt Symbol) map[Symbol]bool {
	if g.followCache == nil {
		g.computeFollowSets()
	}
	return g.followCache[nt]
}

// computeFollowSets runs the fixed-point FOLLOW computation. FOLLOW(start)
// is seeded with {#}; for every production A -> α B β, FIRST(β)-{ε} is added
// to FOLLOW(B), and if β is nullable or empty, FOLLOW(A) is added to
// FOLLOW(B) too.
func (g *GrammarSet) computeFollowSets() {
	g.computeSymbols()

	sets := map[Symbol]map[Symbol]bool{}
	for nt := range g.nonTerminals {
		sets[nt] = map[Symbol]bool{}
	}
	if g.start != "" {
		sets[g.start] = map[Symbol]bool{EndOfInput: true}
	}

	for {
		more := false

		for _, r := range g.rules {
			for _, p := range r.Productions {
				if p.IsEpsilon() {
					continue
				}

				for i, sym := range p {
					if !g.nonTerminals[sym] {
						continue
					}

					beta := p[i+1:]
					betaFirst := g.FirstOfSequence(beta)

					for t := range betaFirst {
						if t == Epsilon {
							continue
						}
						if !sets[sym][t] {
							sets[sym][t] = true
							more = true
						}
					}

					if len(beta) == 0 || betaFirst[Epsilon] {
						for t := range sets[r.NonTerminal] {
							if !sets[sym][t] {
								sets[sym][t] = true
								more = true
							}
						}
					}
				}
			}
		}

		if !more {
			break
		}
	}

	g.followCache = sets
}

package grammar

// BaselineGrammarText is the 47-production grammar the semantic action
// catalogue in internal/semantic is registered against. Every RHS here
// is written with the exact token spacing internal/semantic's
// ActionKey.RHS strings expect, since both are built from
// Production.String()'s space-joined rendering.
const BaselineGrammarText = `
	P -> D' S'
	D' -> ε | D' D ;
	D -> T d | T d [ i ] | T d ( A' ) { D' S' }
	T -> int | void | float
	A' -> ε | A' A ;
	A -> T d | T d [ ] | T d ( )
	S' -> S | S' ; S
	S -> d = E | if ( B ) S | if ( B ) S else S | while ( B ) S | for ( S ; B ; S ) S | return E | print E | input d | d ( R' ) | d [ E ] = E | { S' }
	B -> B ∧ B | B ∨ B | E r E | E
	E -> d = E | i | f | d | d ( R' ) | E + E | E - E | E * E | E / E | ( E ) | d [ E ]
	R' -> ε | R' R ,
	R -> E | d [ ] | d ( )
`

// BaselineGrammar parses BaselineGrammarText.
func BaselineGrammar() (*GrammarSet, error) {
	return Parse(BaselineGrammarText)
}

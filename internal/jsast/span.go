package jsast

// Span locates a parsed node in Program.Source as byte offsets.
//
// Statements that sit in a statement list also record Lead, where the
// trivia before them begins, and Trail, the end of a comment that follows
// them on the same line. A declarator's Lead is the end of the declarator
// before it. Blocks, programs and variable declarations record the extent
// of their item list in Head and Tail.
type Span struct {
	Start, End  int
	Lead, Trail int
	Head, Tail  int

	// Synthetic marks a node built after parsing that took the place of a
	// parsed one. Start and End then delimit the text it replaced.
	Synthetic bool
}

// Text returns the source text of n and whether n was parsed from p.Source.
func (p *Program) Text(n Node) (string, bool) {
	sp, ok := p.Spans[n]
	if !ok || sp.Synthetic {
		return "", false
	}

	return string(p.Source[sp.Start:sp.End]), true
}

// Replace records that n stands where the parsed node old used to be.
func (p *Program) Replace(old, n Node) {
	sp, ok := p.Spans[old]
	if !ok {
		return
	}

	sp.Synthetic = true
	p.Spans[n] = sp
}

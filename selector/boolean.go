package selector

import (
	"fmt"
	"strings"

	"pagecarve/pcerr"
)

// nodeKind tags the boolean expression tree's variant, mirroring the
// Pattern Matcher's tagged-variant-plus-evaluator shape at a higher level.
type nodeKind int

const (
	nodeAnd nodeKind = iota
	nodeOr
	nodeNot
	nodeLeaf
)

type node struct {
	kind        nodeKind
	left, right *node
	leafText    string
}

// parseState walks a token slice left to right for the recursive-descent
// parser below.
type parseState struct {
	toks []Token
	pos  int
}

func (p *parseState) peek() (Token, bool) {
	if p.pos >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parseState) next() (Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

// ParseBoolean parses a boolean expression string into its tree form.
func ParseBoolean(expr string) (*node, error) {
	toks := TokenizeBoolean(expr)
	if len(toks) == 0 {
		return nil, pcerr.Inputf("empty boolean expression %q", expr)
	}
	ps := &parseState{toks: toks}
	n, err := ps.parseOr()
	if err != nil {
		return nil, pcerr.WrapInput(fmt.Sprintf("boolean expression %q", expr), err)
	}
	if ps.pos != len(ps.toks) {
		return nil, pcerr.Inputf("unexpected trailing tokens in boolean expression %q", expr)
	}
	return n, nil
}

func (p *parseState) parseOr() (*node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.Kind != TokOr {
			break
		}
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &node{kind: nodeOr, left: left, right: right}
	}
	return left, nil
}

func (p *parseState) parseAnd() (*node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || (t.Kind != TokAnd && t.Kind != TokAndNot) {
			break
		}
		isAndNot := t.Kind == TokAndNot
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		if isAndNot {
			right = &node{kind: nodeNot, left: right}
		}
		left = &node{kind: nodeAnd, left: left, right: right}
	}
	return left, nil
}

func (p *parseState) parseNot() (*node, error) {
	t, ok := p.peek()
	if ok && t.Kind == TokNot {
		p.next()
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeNot, left: inner}, nil
	}
	return p.parseAtom()
}

func (p *parseState) parseAtom() (*node, error) {
	t, ok := p.next()
	if !ok {
		return nil, pcerr.Input("unexpected end of boolean expression")
	}
	switch t.Kind {
	case TokLParen:
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		closing, ok := p.next()
		if !ok || closing.Kind != TokRParen {
			return nil, pcerr.Input("unbalanced parentheses")
		}
		return inner, nil
	case TokOperand:
		return &node{kind: nodeLeaf, leafText: t.Value}, nil
	default:
		return nil, pcerr.Inputf("unexpected token in boolean expression")
	}
}

// collectRangeLeaves returns every leaf node whose text is itself a range
// pattern ("X to Y").
func collectRangeLeaves(n *node) []*node {
	if n == nil {
		return nil
	}
	switch n.kind {
	case nodeLeaf:
		if IsRangePattern(n.leafText) {
			return []*node{n}
		}
		return nil
	case nodeNot:
		return collectRangeLeaves(n.left)
	default:
		return append(collectRangeLeaves(n.left), collectRangeLeaves(n.right)...)
	}
}

// evalCtx threads the document and an optional leaf override (used for
// magazine evaluation, where the range-pattern leaf's value is pinned to
// one section's pages) through tree evaluation.
type evalCtx struct {
	doc      Analyzer
	universe map[int]struct{}
	override *node
	overrideSet map[int]struct{}
}

func (c *evalCtx) eval(n *node) (map[int]struct{}, error) {
	switch n.kind {
	case nodeNot:
		inner, err := c.eval(n.left)
		if err != nil {
			return nil, err
		}
		return setDifference(c.universe, inner), nil
	case nodeAnd:
		l, err := c.eval(n.left)
		if err != nil {
			return nil, err
		}
		r, err := c.eval(n.right)
		if err != nil {
			return nil, err
		}
		return setIntersect(l, r), nil
	case nodeOr:
		l, err := c.eval(n.left)
		if err != nil {
			return nil, err
		}
		r, err := c.eval(n.right)
		if err != nil {
			return nil, err
		}
		return setUnion(l, r), nil
	case nodeLeaf:
		if n == c.override {
			return c.overrideSet, nil
		}
		return c.evalLeaf(n.leafText)
	default:
		return nil, pcerr.Evaluation("unknown boolean node kind")
	}
}

func (c *evalCtx) evalLeaf(text string) (map[int]struct{}, error) {
	if strings.EqualFold(strings.TrimSpace(text), "all") {
		return c.universe, nil
	}
	pred, err := ParsePredicate(text)
	if err != nil {
		return nil, err
	}
	pages, err := MatchPages(pred, c.doc)
	if err != nil {
		return nil, err
	}
	return toSet(pages), nil
}

func toSet(pages []int) map[int]struct{} {
	out := make(map[int]struct{}, len(pages))
	for _, p := range pages {
		out[p] = struct{}{}
	}
	return out
}

func setUnion(a, b map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

func setIntersect(a, b map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{})
	for k := range a {
		if _, ok := b[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}

func setDifference(a, b map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{})
	for k := range a {
		if _, ok := b[k]; !ok {
			out[k] = struct{}{}
		}
	}
	return out
}

func universeSet(n int) map[int]struct{} {
	out := make(map[int]struct{}, n)
	for p := 1; p <= n; p++ {
		out[p] = struct{}{}
	}
	return out
}

// flattenOr returns the top-level OR disjuncts of n (n itself if it is not
// an OR node), used by magazine evaluation to separate the disjunct
// carrying the range-pattern leaf from sibling disjuncts that contribute
// plain OR'd pages.
func flattenOr(n *node) []*node {
	if n.kind != nodeOr {
		return []*node{n}
	}
	return append(flattenOr(n.left), flattenOr(n.right)...)
}

func containsNode(n, target *node) bool {
	if n == nil {
		return false
	}
	if n == target {
		return true
	}
	switch n.kind {
	case nodeNot:
		return containsNode(n.left, target)
	case nodeLeaf:
		return false
	default:
		return containsNode(n.left, target) || containsNode(n.right, target)
	}
}

// EvaluateBoolean evaluates a boolean expression against doc, dispatching
// to the magazine evaluation path when the expression contains exactly one
// range-pattern operand.
func EvaluateBoolean(expr string, doc Analyzer) (*Result, error) {
	tree, err := ParseBoolean(expr)
	if err != nil {
		return nil, err
	}
	rangeLeaves := collectRangeLeaves(tree)
	if len(rangeLeaves) > 1 {
		return nil, pcerr.Evaluation("more than one range pattern in boolean expression")
	}

	n := doc.PageCount()
	universe := universeSet(n)

	if len(rangeLeaves) == 0 {
		ctx := &evalCtx{doc: doc, universe: universe}
		set, err := ctx.eval(tree)
		if err != nil {
			return nil, err
		}
		pages := make([]int, 0, len(set))
		for p := range set {
			pages = append(pages, p)
		}
		sortInts(pages)
		groups := consecutiveRunGroups(pages, expr)
		return &Result{Pages: set, Description: expr, Groups: groups}, nil
	}

	return evaluateMagazine(expr, tree, rangeLeaves[0], doc, universe)
}

// evaluateMagazine implements the "magazine filter": the range-pattern
// operand is expanded into sections; for the OR-disjunct containing it, the
// rest of that disjunct's expression is evaluated per section with the
// range leaf pinned to that section's pages. Sibling OR disjuncts that do
// not mention the range leaf are evaluated globally once, and any of their
// pages not already covered by a section become singleton groups.
func evaluateMagazine(expr string, tree, rangeLeaf *node, doc Analyzer, universe map[int]struct{}) (*Result, error) {
	sections, err := ResolveRangePattern(rangeLeaf.leafText, doc)
	if err != nil {
		return nil, err
	}

	disjuncts := flattenOr(tree)
	var rangeDisjunct *node
	var otherDisjuncts []*node
	for _, d := range disjuncts {
		if containsNode(d, rangeLeaf) {
			rangeDisjunct = d
		} else {
			otherDisjuncts = append(otherDisjuncts, d)
		}
	}

	var groups []Group
	covered := make(map[int]struct{})

	for _, sec := range sections {
		secPages := make(map[int]struct{})
		for p := sec.Start; p <= sec.End; p++ {
			secPages[p] = struct{}{}
		}
		ctx := &evalCtx{doc: doc, universe: universe, override: rangeLeaf, overrideSet: secPages}
		result, err := ctx.eval(rangeDisjunct)
		if err != nil {
			return nil, err
		}
		if len(result) == 0 {
			continue
		}
		pages := make([]int, 0, len(result))
		for p := range result {
			pages = append(pages, p)
			covered[p] = struct{}{}
		}
		sortInts(pages)
		groups = append(groups, Group{
			Pages:        pages,
			IsRange:      true,
			OriginalSpec: fmt.Sprintf("%s#%d", expr, sec.Index),
		})
	}

	for _, d := range otherDisjuncts {
		ctx := &evalCtx{doc: doc, universe: universe}
		result, err := ctx.eval(d)
		if err != nil {
			return nil, err
		}
		extra := make([]int, 0)
		for p := range result {
			if _, already := covered[p]; !already {
				extra = append(extra, p)
			}
		}
		sortInts(extra)
		for _, p := range extra {
			covered[p] = struct{}{}
			groups = append(groups, Group{Pages: []int{p}, IsRange: false, OriginalSpec: expr})
		}
	}

	final := make(map[int]struct{})
	for _, g := range groups {
		for _, p := range g.Pages {
			final[p] = struct{}{}
		}
	}
	return &Result{Pages: final, Description: expr, Groups: groups}, nil
}

// consecutiveRunGroups collapses a sorted, deduplicated page list into
// groups of consecutive runs, used for the plain (non-magazine) boolean
// evaluation result.
func consecutiveRunGroups(pages []int, spec string) []Group {
	if len(pages) == 0 {
		return nil
	}
	var groups []Group
	start := pages[0]
	prev := pages[0]
	flush := func(end int) {
		run := make([]int, 0, end-start+1)
		for p := start; p <= end; p++ {
			run = append(run, p)
		}
		groups = append(groups, Group{Pages: run, IsRange: len(run) > 1, OriginalSpec: spec})
	}
	for _, p := range pages[1:] {
		if p == prev+1 {
			prev = p
			continue
		}
		flush(prev)
		start = p
		prev = p
	}
	flush(prev)
	return groups
}

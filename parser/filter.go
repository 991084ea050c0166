package parser

import "strings"

type filterMode uint

const (
	// filterGate is the resting state: waiting for an element that
	// decides whether the next subtree is kept or skipped.
	filterGate filterMode = iota
	filterKeep
	filterSkip
)

// tagFilter is an inclusion set over tag names. While inactive (no
// names added) every token passes. Once active, only elements in the
// set and their full subtrees are surfaced; an element outside the
// set is dropped with its entire subtree, in-set descendants
// included.
//
// Subtree extent is tracked by same-name nesting depth, which holds
// up under tag soup: a close tag that never arrives simply keeps the
// current mode until end of input.
type tagFilter struct {
	allowed map[string]struct{}
	mode    filterMode
	holder  string
	depth   int
}

func newTagFilter() *tagFilter {
	return &tagFilter{}
}

func (f *tagFilter) add(name string) {
	if f.allowed == nil {
		f.allowed = make(map[string]struct{})
	}
	f.allowed[strings.ToLower(name)] = struct{}{}
}

func (f *tagFilter) active() bool {
	return len(f.allowed) > 0
}

// admit decides whether one token is surfaced, updating the filter's
// view of where in the element nesting the stream currently is.
func (f *tagFilter) admit(t Token) bool {
	if !f.active() {
		return true
	}
	switch f.mode {
	case filterKeep:
		f.track(t)
		return true
	case filterSkip:
		f.track(t)
		return false
	}

	// gate: text, comments and stray close tags outside any kept
	// subtree are dropped
	if t.Type != OpenTagToken {
		return false
	}
	f.holder = t.TagName
	f.depth = 1
	if _, ok := f.allowed[t.TagName]; ok {
		f.mode = filterKeep
		return true
	}
	f.mode = filterSkip
	return false
}

func (f *tagFilter) track(t Token) {
	switch t.Type {
	case OpenTagToken:
		// self-closing opens count too: their synthetic CloseTag
		// follows immediately and balances the depth back out
		if t.TagName == f.holder {
			f.depth++
		}
	case CloseTagToken:
		if t.TagName == f.holder {
			f.depth--
			if f.depth == 0 {
				f.mode = filterGate
				f.holder = ""
			}
		}
	}
}

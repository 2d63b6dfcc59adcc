package render

import "github.com/ardnew/calcrst/model"

// layout tracks the spacing between consecutive entries.
//
//	state            entry      next state       output
//	afterOtherEntry  term       afterTermRun     literal-block opener
//	afterTermRun     term       afterTermRun     (none)
//	afterTermRun     non-term   afterOtherEntry  one blank line
//	afterOtherEntry  non-term   afterOtherEntry  (none)
//
// Independently, spacing is pending after every entry except symbolic, term
// and equation. A blank entry emits vertical space only when spacing is
// pending; otherwise it makes spacing pending for the next blank.
type layout struct {
	state   state
	spacing bool
}

type state int

const (
	afterOtherEntry state = iota
	afterTermRun
)

// enter advances the state machine for an entry of kind k. It reports whether
// a term run just closed and whether k opens a new literal block.
func (l *layout) enter(k model.Kind) (closed, opens bool) {
	switch {
	case l.state == afterTermRun && k != model.KindTerm:
		l.state = afterOtherEntry

		return true, false

	case k == model.KindTerm:
		opens = l.state == afterOtherEntry
		l.state = afterTermRun

		return false, opens
	}

	return false, false
}

// leave records whether k leaves spacing pending.
func (l *layout) leave(k model.Kind) {
	switch k {
	case model.KindSymbolic, model.KindTerm, model.KindEquation:
		l.spacing = false
	case model.KindBlank:
	default:
		l.spacing = true
	}
}

// blank reports whether a blank entry emits vertical space.
func (l *layout) blank() bool {
	if !l.spacing {
		l.spacing = true

		return false
	}

	return true
}

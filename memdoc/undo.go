package memdoc

import "github.com/gogpu/glyphfix"

type undoEntry struct {
	comp   *Component
	before glyphfix.Transform
}

type undoGroup struct {
	name    string
	entries []undoEntry
}

// BeginUndoGroup implements glyphfix.Document. Groups nest; only the
// outermost one is pushed onto the undo stack.
func (d *Document) BeginUndoGroup(name string) {
	d.openDepth++
	if d.open == nil {
		d.open = &undoGroup{name: name}
	}
}

// EndUndoGroup implements glyphfix.Document. Empty groups are dropped.
func (d *Document) EndUndoGroup() {
	if d.openDepth == 0 {
		return
	}
	d.openDepth--
	if d.openDepth > 0 {
		return
	}
	if len(d.open.entries) > 0 {
		d.undo = append(d.undo, d.open)
	}
	d.open = nil
}

func (d *Document) record(c *Component, before glyphfix.Transform) {
	e := undoEntry{comp: c, before: before}
	if d.open != nil {
		d.open.entries = append(d.open.entries, e)
		return
	}
	d.undo = append(d.undo, &undoGroup{entries: []undoEntry{e}})
}

// OpenUndoGroups returns the nesting depth of open undo groups.
func (d *Document) OpenUndoGroups() int { return d.openDepth }

// UndoDepth returns the number of undoable actions.
func (d *Document) UndoDepth() int { return len(d.undo) }

// UndoName returns the name of the most recent undoable action.
func (d *Document) UndoName() string {
	if len(d.undo) == 0 {
		return ""
	}
	return d.undo[len(d.undo)-1].name
}

// Undo reverts the most recent undo group, like pressing Cmd-Z once.
// It reports false when there is nothing to undo or a group is still open.
func (d *Document) Undo() bool {
	if d.openDepth > 0 || len(d.undo) == 0 || d.closed {
		return false
	}
	g := d.undo[len(d.undo)-1]
	d.undo = d.undo[:len(d.undo)-1]
	for i := len(g.entries) - 1; i >= 0; i-- {
		e := g.entries[i]
		e.comp.t = e.before
	}
	d.redraws++
	return true
}

package tui

import "charm.land/bubbles/v2/key"

// keyMap represents key map data used by this package.
type keyMap struct {
	quit         key.Binding
	reload       key.Binding
	toggleHelp   key.Binding
	nextTab      key.Binding
	prevTab      key.Binding
	moveUp       key.Binding
	moveDown     key.Binding
	prevList     key.Binding
	nextList     key.Binding
	toggleItem   key.Binding
	moveItemUp   key.Binding
	moveItemDown key.Binding
	addEntry     key.Binding
	newChecklist key.Binding
	completeTask key.Binding
	advanceDay   key.Binding
	rewindDay    key.Binding
	gotoDay      key.Binding
	copyID       key.Binding
	toggleDescs  key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		toggleHelp:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		nextTab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		prevTab:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous view")),
		moveUp:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		moveDown:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		prevList:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "previous checklist")),
		nextList:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next checklist")),
		toggleItem:   key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space/x", "toggle item")),
		moveItemUp:   key.NewBinding(key.WithKeys("K", "shift+k"), key.WithHelp("K", "move item up")),
		moveItemDown: key.NewBinding(key.WithKeys("J", "shift+j"), key.WithHelp("J", "move item down")),
		addEntry:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task/item")),
		newChecklist: key.NewBinding(key.WithKeys("N", "shift+n"), key.WithHelp("N", "new checklist")),
		completeTask: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete task")),
		advanceDay:   key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "advance day")),
		rewindDay:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "rewind day")),
		gotoDay:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to day")),
		copyID:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
		toggleDescs:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle descriptions")),
	}
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.nextTab, k.toggleItem, k.addEntry, k.advanceDay, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.nextTab, k.prevTab, k.moveUp, k.moveDown, k.prevList, k.nextList},
		{k.toggleItem, k.moveItemUp, k.moveItemDown, k.addEntry, k.newChecklist, k.completeTask},
		{k.advanceDay, k.rewindDay, k.gotoDay, k.copyID, k.toggleDescs, k.reload, k.toggleHelp, k.quit},
	}
}

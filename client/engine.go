package main

import (
	"github.com/burntcarrot/blockbreak/content"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the editor's key bindings.
type keyMap struct {
	Quit      key.Binding
	Save      key.Binding
	Return    key.Binding
	Backspace key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Home      key.Binding
	End       key.Binding

	// Block types, keyed by the type they set.
	BlockTypes map[string]key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		// The default keys for exiting a session are Esc and Ctrl+C.
		Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),

		// The default key for saving the document is Ctrl+S.
		Save: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),

		Return:    key.NewBinding(key.WithKeys("enter")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),

		// Emacs-style movement keys work alongside the arrow keys.
		Left:  key.NewBinding(key.WithKeys("left", "ctrl+b")),
		Right: key.NewBinding(key.WithKeys("right", "ctrl+f")),
		Up:    key.NewBinding(key.WithKeys("up", "ctrl+p")),
		Down:  key.NewBinding(key.WithKeys("down", "ctrl+n")),
		Home:  key.NewBinding(key.WithKeys("home", "ctrl+a")),
		End:   key.NewBinding(key.WithKeys("end", "ctrl+e")),

		BlockTypes: map[string]key.Binding{
			content.Unstyled:          key.NewBinding(key.WithKeys("alt+0")),
			content.HeaderOne:         key.NewBinding(key.WithKeys("alt+1")),
			content.HeaderTwo:         key.NewBinding(key.WithKeys("alt+2")),
			content.HeaderThree:       key.NewBinding(key.WithKeys("alt+3")),
			content.Blockquote:        key.NewBinding(key.WithKeys("alt+q")),
			content.CodeBlock:         key.NewBinding(key.WithKeys("alt+c")),
			content.UnorderedListItem: key.NewBinding(key.WithKeys("alt+u")),
			content.OrderedListItem:   key.NewBinding(key.WithKeys("alt+o")),
		},
	}
}

// handleKey applies a key press to the editor.
func handleKey(m model, msg tea.KeyMsg) model {
	e := m.editor
	var err error

	switch {
	case key.Matches(msg, m.keys.Save):
		m.status = save(m)
		return m

	case key.Matches(msg, m.keys.Return):
		err = e.Return()

	case key.Matches(msg, m.keys.Backspace):
		err = e.Backspace()

	case key.Matches(msg, m.keys.Left):
		e.Move(-1)

	case key.Matches(msg, m.keys.Right):
		e.Move(1)

	case key.Matches(msg, m.keys.Up):
		e.MoveBlock(-1)

	case key.Matches(msg, m.keys.Down):
		e.MoveBlock(1)

	case key.Matches(msg, m.keys.Home):
		e.MoveToBlockEdge(false)

	case key.Matches(msg, m.keys.End):
		e.MoveToBlockEdge(true)

	case msg.Type == tea.KeySpace:
		err = e.Type(" ")

	case msg.Type == tea.KeyRunes && !msg.Alt:
		err = e.Type(string(msg.Runes))

	default:
		for blockType, binding := range m.keys.BlockTypes {
			if key.Matches(msg, binding) {
				err = e.SetBlockType(blockType)
				break
			}
		}
	}

	if err != nil {
		m.status = "error: " + err.Error()
	}
	return m
}

// save writes the document to the file given by the -file flag.
func save(m model) string {
	fileName := flags.File
	if fileName == "" {
		fileName = "blockbreak-content.yaml"
	}

	if err := content.Save(fileName, m.editor.State().Content()); err != nil {
		logger.Errorf("failed to save to %s: %v", fileName, err)
		return "Failed to save to " + fileName
	}

	logger.Infof("saved document to %s", fileName)
	return "Saved document to " + fileName
}

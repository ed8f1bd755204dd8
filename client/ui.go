package main

import (
	"strings"

	"github.com/burntcarrot/blockbreak/content"
	"github.com/burntcarrot/blockbreak/editor"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type model struct {
	editor   *editor.Editor
	keys     keyMap
	status   string
	width    int
	quitting bool
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	quoteStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	codeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	listStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	caretStyle  = lipgloss.NewStyle().Reverse(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// UI creates a new editor view and runs the main loop.
func UI(e *editor.Editor) error {
	p := tea.NewProgram(initialModel(e), tea.WithAltScreen())
	return p.Start()
}

func initialModel(e *editor.Editor) model {
	return model{
		editor: e,
		keys:   defaultKeyMap(),
		status: "ctrl+s save • alt+0..3 paragraph/headings • alt+q quote • alt+u/o lists • alt+c code • esc quit",
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return handleKey(m, msg), nil
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return "\n  See you later!\n\n"
	}

	state := m.editor.State()
	var sb strings.Builder

	for _, block := range state.Content().Blocks() {
		caret := -1
		if block.Key == state.Selection().FocusKey {
			caret = state.Selection().FocusOffset
		}
		sb.WriteString(renderBlock(block, caret))
		sb.WriteByte('\n')
	}

	sb.WriteByte('\n')
	sb.WriteString(statusStyle.Render(m.status))
	return sb.String()
}

// renderBlock renders the block with a prefix and a style for its type.
// caret is the caret offset inside the block, or -1.
func renderBlock(block content.Block, caret int) string {
	runes := []rune(block.Text)

	var text string
	switch {
	case caret < 0:
		text = string(runes)
	case caret >= len(runes):
		text = string(runes) + caretStyle.Render(" ")
	default:
		text = string(runes[:caret]) + caretStyle.Render(string(runes[caret])) + string(runes[caret+1:])
	}

	indent := strings.Repeat("  ", block.Depth)

	switch block.Type {
	case content.HeaderOne, content.HeaderTwo, content.HeaderThree,
		content.HeaderFour, content.HeaderFive, content.HeaderSix:
		return headerStyle.Render(headerPrefix(block.Type)) + text
	case content.Blockquote:
		return quoteStyle.Render("│ ") + text
	case content.CodeBlock:
		return codeStyle.Render("  ") + text
	case content.UnorderedListItem:
		return indent + listStyle.Render("• ") + text
	case content.OrderedListItem:
		return indent + listStyle.Render("1. ") + text
	default:
		return text
	}
}

func headerPrefix(blockType string) string {
	levels := map[string]int{
		content.HeaderOne:   1,
		content.HeaderTwo:   2,
		content.HeaderThree: 3,
		content.HeaderFour:  4,
		content.HeaderFive:  5,
		content.HeaderSix:   6,
	}
	return strings.Repeat("#", levels[blockType]) + " "
}

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/treedump/pkg/dump"
	"github.com/matzehuels/treedump/pkg/introspect"
	"github.com/matzehuels/treedump/pkg/script"
	"github.com/matzehuels/treedump/pkg/toolkit"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	tableHeaderStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	shellPromptStyle  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	shellErrorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	shellValueStyle   = lipgloss.NewStyle().Foreground(colorGreen)
)

// =============================================================================
// ClassListModel - Interactive class browser
// =============================================================================

// ClassListModel is the bubbletea model for browsing widget classes.
// Enter opens the property table of the selected class; esc goes back.
type ClassListModel struct {
	Classes []*toolkit.Class
	Cursor  int
	Offset  int
	Height  int
	Detail  bool
}

// NewClassListModel creates a browser over every registered class.
func NewClassListModel() ClassListModel {
	names := toolkit.ClassNames()
	classes := make([]*toolkit.Class, 0, len(names))
	for _, n := range names {
		if c, err := toolkit.LookupClass(n); err == nil {
			classes = append(classes, c)
		}
	}
	return ClassListModel{Classes: classes, Height: 15}
}

func (m ClassListModel) Init() tea.Cmd {
	return nil
}

func (m ClassListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if !m.Detail {
				return m, tea.Quit
			}
			m.Detail = false
		case "up", "k":
			if !m.Detail && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Detail && m.Cursor < len(m.Classes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Classes) > 0 {
				m.Detail = !m.Detail
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ClassListModel) View() string {
	var b strings.Builder

	if m.Detail && m.Cursor < len(m.Classes) {
		c := m.Classes[m.Cursor]
		b.WriteString(StyleTitle.Render(c.Name))
		b.WriteString(" ")
		b.WriteString(listDimStyle.Render(strings.Join(c.Ancestry()[1:], " → ")))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("esc back  q quit"))
		b.WriteString("\n\n")
		b.WriteString(propertyTable(c))
		return b.String()
	}

	b.WriteString(StyleTitle.Render("Widget Classes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ properties  q quit"))
	b.WriteString("\n\n")
	b.WriteString(classTable(m.Classes, m.Cursor, m.Offset, m.Height))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Classes))))
	return b.String()
}

// classTable renders rows [offset, offset+height) of classes. A negative
// cursor highlights nothing.
func classTable(classes []*toolkit.Class, cursor, offset, height int) string {
	end := min(offset+height, len(classes))

	rows := [][]string{}
	for i := offset; i < end; i++ {
		c := classes[i]
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		parent := "—"
		if c.Parent != nil {
			parent = c.Parent.Name
		}
		container := ""
		if c.IsA("GtkContainer") {
			container = "✓"
		}
		rows = append(rows, []string{
			marker, c.Name, parent, container,
			strconv.Itoa(len(c.Properties())), strconv.Itoa(len(c.ChildProperties())),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Class", "Parent", "Container", "Props", "Packing").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if offset+row == cursor {
				return listSelectedStyle
			}
			if col == 2 || col >= 4 {
				return listDimStyle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// propertyTable renders the properties and packing properties of c.
func propertyTable(c *toolkit.Class) string {
	var rows [][]string
	add := func(params []*introspect.Param, packing bool) {
		for _, p := range params {
			name := p.Name
			if packing {
				name = "[" + name + "]"
			}
			rows = append(rows, []string{name, p.Kind.String(), p.Owner, p.Flags.String(), defaultText(p)})
		}
	}
	add(c.Properties(), false)
	add(c.ChildProperties(), true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Property", "Type", "Owner", "Flags", "Default").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if col == 2 || col == 3 {
				return listDimStyle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func defaultText(p *introspect.Param) string {
	s, err := dump.FormatValue(p, p.Default)
	if err != nil || s == "" {
		return "—"
	}
	return s
}

// =============================================================================
// ShellModel - Interactive script console
// =============================================================================

// evalDoneMsg carries the outcome of one script run back to the model.
type evalDoneMsg struct {
	res script.Result
	err error
}

// ShellModel is a line-oriented script console against a live tree.
// Each entered line runs in the same interpreter, so declarations persist.
type ShellModel struct {
	ctx     context.Context
	in      *script.Interpreter
	input   []rune
	history []string
	histPos int
	lines   []string
	running bool
	Height  int
}

// NewShellModel creates a console that evaluates lines with in.
func NewShellModel(ctx context.Context, in *script.Interpreter) ShellModel {
	return ShellModel{ctx: ctx, in: in, Height: 20}
}

func (m ShellModel) Init() tea.Cmd {
	return nil
}

func (m ShellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			src := strings.TrimSpace(string(m.input))
			if m.running || src == "" {
				return m, nil
			}
			m.history = append(m.history, src)
			m.histPos = len(m.history)
			m.lines = append(m.lines, shellPromptStyle.Render("> ")+src)
			m.input = nil
			m.running = true
			return m, m.eval(src)
		case tea.KeyBackspace:
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
		case tea.KeyUp:
			if m.histPos > 0 {
				m.histPos--
				m.input = []rune(m.history[m.histPos])
			}
		case tea.KeyDown:
			if m.histPos < len(m.history)-1 {
				m.histPos++
				m.input = []rune(m.history[m.histPos])
			} else {
				m.histPos = len(m.history)
				m.input = nil
			}
		case tea.KeySpace:
			m.input = append(m.input, ' ')
		case tea.KeyRunes:
			m.input = append(m.input, msg.Runes...)
		}
	case evalDoneMsg:
		m.running = false
		m.lines = append(m.lines, splitOutput(msg.res.Stdout, lipgloss.NewStyle())...)
		if msg.res.Value != "" {
			m.lines = append(m.lines, shellValueStyle.Render(msg.res.Value))
		}
		m.lines = append(m.lines, splitOutput(msg.res.Stderr, shellErrorStyle)...)
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 4
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m ShellModel) eval(src string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.in.Eval(m.ctx, src)
		return evalDoneMsg{res: res, err: err}
	}
}

func (m ShellModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("treedump shell"))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render(`import "treedump" for Root, Find, Object, Dump  ·  ctrl+d quit`))
	b.WriteString("\n\n")

	lines := m.lines
	if len(lines) > m.Height {
		lines = lines[len(lines)-m.Height:]
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}

	b.WriteString(shellPromptStyle.Render("> "))
	if m.running {
		b.WriteString(listDimStyle.Render("running…"))
	} else {
		b.WriteString(string(m.input))
		b.WriteString("█")
	}
	return b.String()
}

// splitOutput breaks captured output into styled transcript lines.
func splitOutput(s string, style lipgloss.Style) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	for i, p := range parts {
		parts[i] = style.Render(p)
	}
	return parts
}

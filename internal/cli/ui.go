package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/treedump/pkg/errors"
)

// Palette
var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleWarning for warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorAmber)

	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// A mark is the glyph leading a status line.
type mark struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = mark{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markError   = mark{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	markWarning = mark{"!", lipgloss.NewStyle().Foreground(colorAmber)}
	markInfo    = mark{"›", lipgloss.NewStyle().Foreground(colorGray)}
	markFile    = mark{"→", StyleDim}
)

// uiOut receives status lines. Artifacts written to stdout never mix with
// them.
var uiOut io.Writer = os.Stderr

func status(m mark, indent, msg string) {
	fmt.Fprintln(uiOut, indent+m.style.Render(m.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) {
	status(markSuccess, "", fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(markWarning, "", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(markInfo, "", fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile announces a written output file.
func printFile(path string) {
	status(markFile, "  ", StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests a command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// printStats prints dump statistics on one line, e.g.
// "12 widgets · 30 properties · cached".
func printStats(widgets, properties int, cached bool) {
	var parts []string
	if widgets > 0 {
		parts = append(parts, fmt.Sprintf("%d widgets", widgets))
	}
	if properties > 0 {
		parts = append(parts, fmt.Sprintf("%d properties", properties))
	}
	if cached {
		parts = append(parts, markSuccess.style.Render("cached"))
	} else {
		parts = append(parts, "fresh")
	}
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// ReportError prints err for the user, with a hint for errors the user
// can fix by changing the invocation.
func ReportError(w io.Writer, err error) {
	fmt.Fprintln(w, markError.style.Render(markError.glyph)+" "+err.Error())
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidInput:
		fmt.Fprintln(w, "  "+StyleDim.Render("run with --help for usage"))
	case errors.ErrCodeUnsupported:
		fmt.Fprintln(w, "  "+StyleDim.Render("png and pdf output need rsvg-convert on PATH"))
	}
}

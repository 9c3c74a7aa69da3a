package selectui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const helpMarkdown = `# tgrep keys

| keys | effect |
|---|---|
| j, n, down / k, p, up | move by one |
| J, N / K, P | move by a page fraction |
| }, ] / {, [ | next/previous path entry |
| ), d / (, u | next/previous path entry at the same depth |
| G, >, End / g, <, Home | last/first entry |
| f, PgDn / b, PgUp | page down/up |
| z / l | cycle cursor row: middle, top, bottom |
| h | open this help |
| Enter | open the selected entry |
| q | close this help, or quit |
| Ctrl-C | quit immediately |
| Ctrl-Z | suspend (POSIX) |
`

// RenderHelp renders the key-binding table as a glamour markdown
// document sized to width, the body of the help popup spec.md section
// 4.4 describes.
func RenderHelp(width int) (string, error) {
	if width > 80 {
		width = 80
	}
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("selectui: build help renderer: %w", err)
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return "", fmt.Errorf("selectui: render help: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}

// Popup centers body inside a border box sized to its content: height
// is content_lines+2, width is the longest line plus one column of
// padding and one border column on each side. The border is always
// lipgloss's rounded border; no option selects other characters.
func Popup(body string, termWidth, termHeight int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	rendered := box.Render(body)
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, rendered)
}

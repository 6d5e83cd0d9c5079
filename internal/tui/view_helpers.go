package tui

import (
	"fmt"
	"strings"
)

const indent = "    "

// countLine renders "    Label:     N files" with the label padded so the
// counts line up.
func countLine(label string, n int, styled bool) string {
	value := plural(n, "file")
	if styled {
		value = countStyle.Render(value)
	}
	return fmt.Sprintf("%s%-11s%s\n", indent, label+":", value)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func renderPage(title, data string) string {
	var b strings.Builder

	b.WriteString(promptStyle.Render(title))
	b.WriteString("\n")
	for _, line := range strings.Split(strings.TrimRight(data, "\n"), "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return overlayStyle.Render(strings.TrimRight(b.String(), "\n"))
}

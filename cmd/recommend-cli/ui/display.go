package ui

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// Table displays data in a formatted table.
func Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(headers, "\t"))

	separator := make([]string, len(headers))
	for i := range separator {
		separator[i] = strings.Repeat("-", len(headers[i]))
	}
	fmt.Fprintln(w, strings.Join(separator, "\t"))

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	_ = w.Flush()
}

// Answer prints a recommendation answer, highlighting the **bold** item
// titles the formatter emits.
func Answer(formatted string) {
	bold := color.New(color.Bold)
	for _, line := range strings.Split(formatted, "\n") {
		if start := strings.Index(line, "**"); start >= 0 {
			if end := strings.Index(line[start+2:], "**"); end >= 0 {
				fmt.Fprint(os.Stdout, line[:start])
				bold.Fprint(os.Stdout, line[start+2:start+2+end])
				fmt.Fprintln(os.Stdout, line[start+4+end:])
				continue
			}
		}
		fmt.Fprintln(os.Stdout, line)
	}
}

// Section displays a section header.
func Section(title string) {
	fmt.Fprintf(os.Stdout, "\n%s\n", title)
	fmt.Fprintf(os.Stdout, "%s\n\n", strings.Repeat("=", len(title)))
}

// KeyValue displays a key-value pair in a formatted way.
func KeyValue(key, value string) {
	fmt.Fprintf(os.Stdout, "  %s: %s\n", key, value)
}

package op

import (
	"bufio"
	"fmt"
	"html"
	"io"
)

// TableAsText exports a precedence table as tab-separated text. The first row
// holds the terminals, starting with a blank cell, and every row starts with
// a terminal. Every cell is followed by a tab; empty cells are written as
// a single blank.
func TableAsText(w io.Writer, t *Table, order Ordering) error {
	if t == nil {
		return fmt.Errorf("no precedence table to export")
	}
	bw := bufio.NewWriter(w)
	for _, row := range t.Render(order) {
		for _, cell := range row {
			if cell == "" {
				cell = " "
			}
			bw.WriteString(cell)
			bw.WriteString("\t")
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// TableAsHTML exports a precedence table in HTML-format.
func TableAsHTML(w io.Writer, t *Table, order Ordering) error {
	if t == nil {
		tracer().Errorf("precedence table not yet created, cannot export to HTML")
		return fmt.Errorf("no precedence table to export")
	}
	bw := bufio.NewWriter(w)
	bw.WriteString("<html><body>\n")
	bw.WriteString(fmt.Sprintf("<p>Operator precedence table for %s, %d entries<p>\n",
		html.EscapeString(t.Grammar().Name), t.Size()))
	bw.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	for i, row := range t.Render(order) {
		if i == 0 {
			bw.WriteString("<tr bgcolor=#cccccc>")
		} else {
			bw.WriteString("<tr>")
		}
		for j, cell := range row {
			td := "&nbsp;"
			if cell != "" {
				td = html.EscapeString(cell)
			}
			if j == 0 && i > 0 {
				bw.WriteString("<td bgcolor=#cccccc>")
			} else {
				bw.WriteString("<td>")
			}
			bw.WriteString(td)
			bw.WriteString("</td>")
		}
		bw.WriteString("</tr>\n")
	}
	bw.WriteString("</table></body></html>\n")
	return bw.Flush()
}

package render

import (
	"fmt"
	"html"
	"strconv"
)

// Badge renders a shields-style flat badge with a label box and a count
// box. Text widths are estimated from character count at the 11px Verdana
// shields uses, which is close enough for slugs and small counts.
func Badge(label string, count int) []byte {
	value := strconv.Itoa(count)

	labelWidth := textWidth(label)
	valueWidth := textWidth(value)
	total := labelWidth + valueWidth

	return []byte(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="20">`+
			`<linearGradient id="b" x2="0" y2="100%%"><stop offset="0" stop-color="#bbb" stop-opacity=".1"/><stop offset="1" stop-opacity=".1"/></linearGradient>`+
			`<mask id="a"><rect width="%d" height="20" rx="3" fill="#fff"/></mask>`+
			`<g mask="url(#a)">`+
			`<rect width="%d" height="20" fill="#555"/>`+
			`<rect x="%d" width="%d" height="20" fill="#99c3ff"/>`+
			`<rect width="%d" height="20" fill="url(#b)"/>`+
			`</g>`+
			`<g fill="#fff" text-anchor="middle" font-family="DejaVu Sans,Verdana,Geneva,sans-serif" font-size="11">`+
			`<text x="%d" y="15" fill="#010101" fill-opacity=".3">%s</text>`+
			`<text x="%d" y="14">%s</text>`+
			`<text x="%d" y="15" fill="#010101" fill-opacity=".3">%s</text>`+
			`<text x="%d" y="14">%s</text>`+
			`</g>`+
			`</svg>`,
		total, total,
		labelWidth,
		labelWidth, valueWidth,
		total,
		labelWidth/2, html.EscapeString(label),
		labelWidth/2, html.EscapeString(label),
		labelWidth+valueWidth/2, value,
		labelWidth+valueWidth/2, value,
	))
}

func textWidth(s string) int {
	return 7*len(s) + 10
}

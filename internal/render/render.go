// Package render serializes metric values into the text exposition
// format. Output is deterministic: identical input yields identical
// bytes.
package render

import (
	"strconv"
	"strings"

	"github.com/zonemon/agent/internal/collector"
)

// Render writes one HELP/TYPE header per run of consecutive values that
// share a metric name, followed by one sample line per value. The input
// order is preserved exactly; callers are responsible for keeping the
// series of a family adjacent.
func Render(values []collector.Value) string {
	if len(values) == 0 {
		return ""
	}

	var b strings.Builder
	prev := ""
	for _, v := range values {
		name := v.Desc.Name
		if name != prev {
			b.WriteString("# HELP ")
			b.WriteString(name)
			b.WriteByte(' ')
			b.WriteString(v.Desc.Help)
			b.WriteString("\n# TYPE ")
			b.WriteString(name)
			b.WriteByte(' ')
			b.WriteString(string(v.Desc.Type))
			b.WriteByte('\n')
			prev = name
		}

		b.WriteString(name)
		if len(v.Labels) > 0 {
			b.WriteByte('{')
			for i, l := range v.Labels {
				if i > 0 {
					b.WriteByte(',')
				}
				b.WriteString(l.Name)
				b.WriteString(`="`)
				b.WriteString(escapeLabel(l.Value))
				b.WriteByte('"')
			}
			b.WriteByte('}')
		}
		b.WriteByte(' ')
		b.WriteString(formatValue(v.Value))
		b.WriteByte('\n')
	}
	return b.String()
}

// formatValue renders a sample so that it round-trips: integral values
// carry no decimal point and fractional values keep the shortest
// representation that parses back to the same float64.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func escapeLabel(s string) string {
	return labelEscaper.Replace(s)
}

package chart

import (
	"fmt"
	"strings"

	"github.com/yildizm/ChartShelf/internal/vocab"
)

// Shorthand renders a clause in the compact "aggregate(field:T)" notation,
// e.g. "mean(Horsepower:Q)". Binned fields are wrapped as "bin(field)".
func Shorthand(clause EncodingClause) string {
	field, _ := clause["field"].(string)
	if field == "" {
		return ""
	}

	s := field
	if t, ok := clause[vocab.OptType].(string); ok && t != "" {
		code := vocab.TypeCode(t)
		if code == "" {
			code = t
		}
		s += ":" + code
	}
	if bin, ok := clause[vocab.OptBin].(bool); ok && bin {
		s = "bin(" + s + ")"
	}
	if agg, ok := clause[vocab.OptAggregate].(string); ok && agg != "" {
		s = agg + "(" + s + ")"
	}
	return s
}

// Summary renders the whole specification on one line, channels in display
// order: "mark_point x=Acceleration:Q y=mean(Horsepower)".
func (c ChartSpecification) Summary() string {
	parts := []string{c.Mark}
	for _, ch := range c.Channels() {
		parts = append(parts, fmt.Sprintf("%s=%s", ch, Shorthand(c.Encodings[ch])))
	}
	return strings.Join(parts, " ")
}

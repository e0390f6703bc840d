package onboarding

import (
	"fmt"
	"sort"
	"strings"
)

// Describe renders stored answers for an LLM prompt: question ids become
// titles and option values become labels. Answers to unknown questions are
// skipped. Lines follow catalog order.
func (c *Catalog) Describe(answers map[string]AnswerValue) string {
	type line struct {
		order int
		text  string
	}
	lines := make([]line, 0, len(answers))

	for id, a := range answers {
		q, ok := c.Lookup(id)
		if !ok {
			continue
		}

		var rendered string
		switch a.Kind() {
		case KindString:
			s, _ := a.AsString()
			rendered = q.label(s)
		case KindStringList:
			items, _ := a.AsStrings()
			labels := make([]string, len(items))
			for i, v := range items {
				labels[i] = q.label(v)
			}
			rendered = strings.Join(labels, ", ")
		default:
			rendered = string(a.Raw())
		}
		if strings.TrimSpace(rendered) == "" {
			continue
		}
		lines = append(lines, line{order: q.Order, text: fmt.Sprintf("- %s %s", q.Title, rendered)})
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].order < lines[j].order })
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text
	}
	return strings.Join(out, "\n")
}

func (q Question) label(value string) string {
	for _, o := range q.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

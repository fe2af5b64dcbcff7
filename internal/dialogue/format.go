package dialogue

import (
	"strings"

	"jelajah/internal/ai"
)

// Inline quick-reply markup: a composed message may end with
// "[OPTIONS: Label1|value1, Label2|value2]". The grammar is deliberately tiny:
// "," separates pairs, the first "|" of a pair separates label from value, and
// both sides are whitespace-trimmed. There is no escaping; "|" and "," cannot
// appear inside labels or values. Malformed pairs are dropped rather than
// raising an error, and a tag with no valid pair yields no options at all.
const optionsTagPrefix = "[OPTIONS:"

// SplitOptions strips the trailing options tag from a composed message and
// returns the human-readable reply plus the structured options list (nil when
// the tag is absent or empty).
func SplitOptions(text string) (string, []ai.QuickReply) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasSuffix(trimmed, "]") {
		return trimmed, nil
	}
	i := strings.LastIndex(trimmed, optionsTagPrefix)
	if i < 0 {
		return trimmed, nil
	}

	inner := trimmed[i+len(optionsTagPrefix) : len(trimmed)-1]
	reply := strings.TrimSpace(trimmed[:i])

	var options []ai.QuickReply
	for _, pair := range strings.Split(inner, ",") {
		label, value, ok := strings.Cut(pair, "|")
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		value = strings.TrimSpace(value)
		if label == "" || value == "" {
			continue
		}
		options = append(options, ai.QuickReply{Label: label, Value: value})
	}
	return reply, options
}

// optionsTag renders the inline markup consumed by SplitOptions.
func optionsTag(opts []ai.QuickReply) string {
	pairs := make([]string, 0, len(opts))
	for _, o := range opts {
		pairs = append(pairs, o.Label+"|"+o.Value)
	}
	return optionsTagPrefix + " " + strings.Join(pairs, ", ") + "]"
}

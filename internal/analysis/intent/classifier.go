package intent

import (
	"strings"

	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/model/rules"
)

// Classify maps a user utterance to exactly one canned reply.
//
// The utterance is lowercased and the table is evaluated in order with
// plain substring containment; the first matching rule wins. Containment
// means partial words match too ("produtos" hits the "produto" trigger) —
// a known simplification, kept deliberately. Unmatched utterances get the
// fallback reply, so Classify is total over all strings.
func Classify(table []rules.Rule, utterance string) string {
	normalized := strings.ToLower(utterance)

	for _, rule := range table {
		for _, trigger := range rule.Triggers {
			if trigger == "" {
				continue
			}
			if strings.Contains(normalized, trigger) {
				return rule.Response
			}
		}
	}

	return rules.Fallback
}

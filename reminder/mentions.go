package reminder

import (
	"strings"

	"remindbot/config"
)

// MentionResolver turns event titles into VK mention handles.
type MentionResolver struct {
	table []config.Mention
}

func NewMentionResolver(table []config.Mention) *MentionResolver {
	return &MentionResolver{table: table}
}

// Resolve returns the handles of every name found anywhere in text, in table
// order and joined by a single space. Matching is case-sensitive and does not
// respect word boundaries.
func (r *MentionResolver) Resolve(text string) string {
	var handles []string
	for _, m := range r.table {
		if strings.Contains(text, m.Name) {
			handles = append(handles, m.Handle)
		}
	}
	return strings.Join(handles, " ")
}

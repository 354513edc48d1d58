package utils

import (
	"net/url"
	"strings"
)

// ListQuery is the raw list filter taken from the query string.
// /api/requests?scope=pool&status=approved&type=general-service&search=pump
type ListQuery struct {
	Scope  string
	Status string
	Type   string
	Search string
}

func ParseQuery(query url.Values) ListQuery {
	return ListQuery{
		Scope:  strings.ToLower(strings.TrimSpace(query.Get("scope"))),
		Status: strings.TrimSpace(query.Get("status")),
		Type:   strings.TrimSpace(query.Get("type")),
		Search: strings.TrimSpace(query.Get("search")),
	}
}

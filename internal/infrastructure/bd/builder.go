package db

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"service-desk/pkg/types"
)

// searchColumns are matched case-insensitively by RequestQuery.Search.
var searchColumns = []string{"title", "client", "address"}

// ApplyRequestQuery adds the optional status, type and free-text filters of
// a request list. A comma-separated status selects any of the values.
func ApplyRequestQuery(builder sq.SelectBuilder, q types.RequestQuery) sq.SelectBuilder {
	if s := strings.TrimSpace(q.Status); s != "" {
		if strings.Contains(s, ",") {
			builder = builder.Where(sq.Eq{"status": splitTrim(s)})
		} else {
			builder = builder.Where(sq.Eq{"status": s})
		}
	}

	if t := strings.TrimSpace(q.Type); t != "" {
		builder = builder.Where("LOWER(type) = LOWER(?)", t)
	}

	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + s + "%"
		or := make(sq.Or, 0, len(searchColumns))
		for _, col := range searchColumns {
			or = append(or, sq.ILike{col: like})
		}
		builder = builder.Where(or)
	}

	return builder.OrderBy("created_at DESC", "id")
}

func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

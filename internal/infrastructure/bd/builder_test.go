package db

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-desk/pkg/types"
)

func selectRequests() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Select("id").From("service_requests")
}

func TestApplyRequestQuery_Empty(t *testing.T) {
	query, args, err := ApplyRequestQuery(selectRequests(), types.RequestQuery{}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM service_requests ORDER BY created_at DESC, id", query)
	assert.Empty(t, args)
}

func TestApplyRequestQuery_AllFilters(t *testing.T) {
	query, args, err := ApplyRequestQuery(selectRequests(), types.RequestQuery{
		Status: "approved",
		Type:   "General Service",
		Search: " pump ",
	}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "status = $1")
	assert.Contains(t, query, "LOWER(type) = LOWER($2)")
	assert.Contains(t, query, "title ILIKE $3")
	assert.Contains(t, query, "address ILIKE $5")
	assert.Equal(t, []interface{}{"approved", "General Service", "%pump%", "%pump%", "%pump%"}, args)
}

func TestApplyRequestQuery_StatusList(t *testing.T) {
	query, args, err := ApplyRequestQuery(selectRequests(), types.RequestQuery{Status: "pending, quoted"}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "status IN ($1,$2)")
	assert.Equal(t, []interface{}{"pending", "quoted"}, args)
}

package services

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"service-desk/internal/entities"
	"service-desk/pkg/constants"
	"service-desk/pkg/types"
)

func TestBuildRequestsWorkbook(t *testing.T) {
	created := time.Date(2024, 3, 2, 10, 30, 0, 0, time.UTC)
	buf, err := BuildRequestsWorkbook([]entities.ServiceRequest{{
		ID:                 "6f1c",
		Title:              "Pump repair",
		Status:             constants.StatusQuoted,
		RequestedBy:        "tech1",
		AdminResponse:      null.StringFrom("Approved, $500"),
		Price:              null.Float64From(500),
		AssignedTechnician: &entities.Technician{Name: "tech1"},
		BaseEntity:         types.BaseEntity{CreatedAt: created, UpdatedAt: created},
	}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "6f1c", rows[1][0])
	assert.Equal(t, "2024-03-02 10:30", rows[1][1])
	assert.Equal(t, "quoted", rows[1][7])
	assert.Equal(t, "500", rows[1][11])
}

func TestReportFileName(t *testing.T) {
	assert.Equal(t, "requests_2024-03-02.xlsx", ReportFileName(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
}

package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"service-desk/internal/entities"
)

const reportSheet = "Requests"

var reportHeaders = []interface{}{
	"ID", "Created", "Title", "Client", "Address", "Type", "Quantity",
	"Status", "Requested by", "Technician", "Admin response", "Price", "Updated",
}

func reportRow(r entities.ServiceRequest) []interface{} {
	var tech, response, price interface{} = "", "", ""
	if r.AssignedTechnician != nil {
		tech = r.AssignedTechnician.Name
	}
	if r.AdminResponse.Valid {
		response = r.AdminResponse.String
	}
	if r.Price.Valid {
		price = r.Price.Float64
	}
	return []interface{}{
		r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Title, r.Client, r.Address, r.Type, r.Quantity,
		r.Status.String(), r.RequestedBy, tech, response, price, r.UpdatedAt.Format("2006-01-02 15:04"),
	}
}

// BuildRequestsWorkbook renders requests as a single-sheet XLSX file.
func BuildRequestsWorkbook(reqs []entities.ServiceRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	headers := reportHeaders
	if err := f.SetSheetRow(reportSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(reportHeaders))
	if err := f.SetCellStyle(reportSheet, "A1", lastCol+"1", style); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, r := range reqs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := reportRow(r)
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(reportSheet, "A", "A", 38)
	_ = f.SetColWidth(reportSheet, "C", "E", 30)
	_ = f.SetColWidth(reportSheet, "K", "K", 40)

	return f.WriteToBuffer()
}

func ReportFileName(now time.Time) string {
	return fmt.Sprintf("requests_%s.xlsx", now.Format("2006-01-02"))
}

// Package export writes list views and reports as CSV and acknowledges CSV
// uploads.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/erazemk/inventorypro/internal/model"
	"github.com/erazemk/inventorypro/internal/report"
)

// ContentType is the MIME type of every export.
const ContentType = "text/csv; charset=utf-8"

// Download names of the list exports.
const (
	InventoryFileName  = "inventory-export.csv"
	WarehousesFileName = "warehouses-export.csv"
	TransfersFileName  = "transfers-export.csv"
)

func write(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	return nil
}

// WriteInventory writes items as CSV.
func WriteInventory(w io.Writer, items []model.InventoryItem) error {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ID,
			item.Name,
			string(item.Category),
			strconv.Itoa(item.Stock),
			string(item.Status),
			item.Warehouse,
			item.LastUpdated,
		})
	}
	return write(w, []string{"Item ID", "Name", "Category", "Stock", "Status", "Warehouse", "Last Updated"}, rows)
}

// WriteWarehouses writes warehouses as CSV.
func WriteWarehouses(w io.Writer, warehouses []model.Warehouse) error {
	rows := make([][]string, 0, len(warehouses))
	for _, wh := range warehouses {
		rows = append(rows, []string{
			wh.ID,
			wh.Name,
			wh.Location,
			wh.Capacity,
			strconv.Itoa(wh.CurrentStock),
			strconv.Itoa(wh.Utilization),
			string(wh.Status),
		})
	}
	return write(w, []string{"Warehouse ID", "Name", "Location", "Capacity", "Current Stock", "Utilization", "Status"}, rows)
}

// WriteTransfers writes transfers as CSV.
func WriteTransfers(w io.Writer, transfers []model.Transfer) error {
	rows := make([][]string, 0, len(transfers))
	for _, t := range transfers {
		rows = append(rows, []string{
			t.ID,
			t.ItemName,
			strconv.Itoa(t.Quantity),
			t.FromWarehouse,
			t.ToWarehouse,
			string(t.Status),
			t.RequestedBy,
			t.RequestedDate,
			t.CompletedDate,
		})
	}
	return write(w, []string{"Transfer ID", "Item", "Quantity", "From", "To", "Status", "Requested By", "Requested Date", "Completed Date"}, rows)
}

// WriteReport writes a report as CSV. Columns depend on the report type.
func WriteReport(w io.Writer, r *report.Report) error {
	rows := make([][]string, 0, len(r.Rows))

	switch r.Type {
	case report.TypeValuation:
		for _, row := range r.Rows {
			value := row.InventoryItem.Value()
			if row.Value != nil {
				value = *row.Value
			}
			rows = append(rows, []string{
				row.ID, row.Name, string(row.Category), strconv.Itoa(row.Stock),
				row.Price.String(), value.String(), row.Warehouse,
			})
		}
		return write(w, []string{"Item ID", "Name", "Category", "Stock", "Price", "Total Value", "Warehouse"}, rows)

	case report.TypeMovement:
		for _, row := range r.Rows {
			movement := 0
			if row.Movement != nil {
				movement = *row.Movement
			}
			rows = append(rows, []string{
				row.ID, row.Name, string(row.Category), strconv.Itoa(row.Stock),
				strconv.Itoa(movement), row.Warehouse,
			})
		}
		return write(w, []string{"Item ID", "Name", "Category", "Stock", "Movement", "Warehouse"}, rows)

	default:
		for _, row := range r.Rows {
			rows = append(rows, []string{
				row.ID, row.Name, string(row.Category), strconv.Itoa(row.Stock),
				string(row.Status), row.Warehouse,
			})
		}
		return write(w, []string{"Item ID", "Name", "Category", "Stock", "Status", "Warehouse"}, rows)
	}
}

// CountRows reads an uploaded CSV and returns the number of data rows after
// the header. Nothing is imported.
func CountRows(r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records := 0
	for {
		_, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: reading csv: %v", model.ErrInvalid, err)
		}
		records++
	}
	if records == 0 {
		return 0, nil
	}
	return records - 1, nil
}

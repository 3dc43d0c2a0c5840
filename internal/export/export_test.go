package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/erazemk/inventorypro/internal/model"
	"github.com/erazemk/inventorypro/internal/report"
)

func TestWriteInventory(t *testing.T) {
	items := []model.InventoryItem{
		{ID: "INV001", Name: "iPhone 15 Pro", Category: model.CategoryElectronics, Stock: 45, Status: model.StockStatusInStock, Warehouse: "Main Warehouse", LastUpdated: "2025-01-15"},
		{ID: "INV009", Name: `Desk, "Oak"`, Category: model.CategoryFurniture, Stock: 2, Status: model.StockStatusLowStock, Warehouse: "Book Depot", LastUpdated: "2025-02-01"},
	}

	var buf bytes.Buffer
	if err := WriteInventory(&buf, items); err != nil {
		t.Fatalf("WriteInventory: %v", err)
	}

	want := "Item ID,Name,Category,Stock,Status,Warehouse,Last Updated\n" +
		"INV001,iPhone 15 Pro,Electronics,45,In Stock,Main Warehouse,2025-01-15\n" +
		"INV009,\"Desk, \"\"Oak\"\"\",Furniture,2,Low Stock,Book Depot,2025-02-01\n"
	if buf.String() != want {
		t.Errorf("unexpected csv:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteEmptyListHasHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTransfers(&buf, nil); err != nil {
		t.Fatalf("WriteTransfers: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Transfer ID,Item,Quantity") {
		t.Errorf("unexpected csv %q", buf.String())
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected header only, got %q", buf.String())
	}
}

func TestWriteReportValuation(t *testing.T) {
	items := []model.InventoryItem{
		{ID: "INV004", Name: "Nike Air Force 1", Category: model.CategoryClothing, Stock: 125, Warehouse: "Fashion Store", Price: decimal.NewFromInt(110)},
	}
	r, err := report.Generate(report.Options{Type: report.TypeValuation}, items, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, r); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	want := "Item ID,Name,Category,Stock,Price,Total Value,Warehouse\n" +
		"INV004,Nike Air Force 1,Clothing,125,110,13750,Fashion Store\n"
	if buf.String() != want {
		t.Errorf("unexpected csv:\n%s", buf.String())
	}
}

func TestCountRows(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"Item ID,Name\n", 0},
		{"Item ID,Name\nINV001,Phone\nINV002,Laptop\n", 2},
		{"a,b\n1,2\n\n3\n", 2},
	}
	for _, tt := range tests {
		got, err := CountRows(strings.NewReader(tt.input))
		if err != nil {
			t.Errorf("CountRows(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CountRows(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}

	if _, err := CountRows(strings.NewReader("a,\"unterminated\n")); !errors.Is(err, model.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

package store

import (
	"github.com/shopspring/decimal"

	"github.com/erazemk/inventorypro/internal/model"
)

// Datasets written on first start when a collection key is absent.

func seedInventory() []model.InventoryItem {
	item := func(id, name string, category model.Category, stock int, warehouse, updated string, minStock int, price int64) model.InventoryItem {
		return model.InventoryItem{
			ID:          id,
			Name:        name,
			Category:    category,
			Stock:       stock,
			Status:      model.DeriveStockStatus(stock, minStock),
			Warehouse:   warehouse,
			LastUpdated: updated,
			MinStock:    minStock,
			Price:       decimal.NewFromInt(price),
		}
	}
	return []model.InventoryItem{
		item("INV001", "iPhone 15 Pro", model.CategoryElectronics, 45, "Main Warehouse", "2025-01-15", 10, 999),
		item("INV002", "Samsung Galaxy S24", model.CategoryElectronics, 8, "Electronics Hub", "2025-01-14", 10, 899),
		item("INV003", "MacBook Air M2", model.CategoryElectronics, 0, "Tech Center", "2025-01-13", 5, 1199),
		item("INV004", "Nike Air Force 1", model.CategoryClothing, 125, "Fashion Store", "2025-01-12", 20, 110),
		item("INV005", "The Great Gatsby", model.CategoryBooks, 67, "Book Depot", "2025-01-11", 15, 15),
	}
}

func seedWarehouses() []model.Warehouse {
	return []model.Warehouse{
		{ID: "WH001", Name: "Main Warehouse", Location: "New York, NY", Capacity: "50,000 sq ft", CurrentStock: 1247, Utilization: 85, Status: model.WarehouseStatusActive},
		{ID: "WH002", Name: "Electronics Hub", Location: "Los Angeles, CA", Capacity: "30,000 sq ft", CurrentStock: 892, Utilization: 72, Status: model.WarehouseStatusActive},
		{ID: "WH003", Name: "Tech Center", Location: "Austin, TX", Capacity: "25,000 sq ft", CurrentStock: 456, Utilization: 45, Status: model.WarehouseStatusActive},
		{ID: "WH004", Name: "Fashion Store", Location: "Miami, FL", Capacity: "20,000 sq ft", CurrentStock: 678, Utilization: 68, Status: model.WarehouseStatusMaintenance},
		{ID: "WH005", Name: "Book Depot", Location: "Chicago, IL", Capacity: "15,000 sq ft", CurrentStock: 234, Utilization: 32, Status: model.WarehouseStatusActive},
	}
}

func seedTransfers() []model.Transfer {
	return []model.Transfer{
		{
			ID:            "TRF001",
			ItemName:      "iPhone 15 Pro",
			Quantity:      10,
			FromWarehouse: "Main Warehouse",
			ToWarehouse:   "Electronics Hub",
			Status:        model.TransferStatusInTransit,
			RequestedBy:   "Manager",
			RequestedDate: "2025-01-20",
		},
		{
			ID:            "TRF002",
			ItemName:      "Samsung Galaxy S24",
			Quantity:      15,
			FromWarehouse: "Tech Center",
			ToWarehouse:   "Main Warehouse",
			Status:        model.TransferStatusCompleted,
			RequestedBy:   "Admin",
			RequestedDate: "2025-01-18",
			CompletedDate: "2025-01-19",
		},
	}
}

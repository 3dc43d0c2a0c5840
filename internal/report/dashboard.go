package report

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/erazemk/inventorypro/internal/model"
)

// RecentTransferLimit caps the transfers shown on the dashboard.
const RecentTransferLimit = 5

// CategoryCount is the number of items in a category.
type CategoryCount struct {
	Name  model.Category `json:"name"`
	Count int            `json:"count"`
}

// Stats are the dashboard figures.
type Stats struct {
	TotalStock      int              `json:"totalStock"`
	LowStockCount   int              `json:"lowStockCount"`
	InStockCount    int              `json:"inStockCount"`
	OutOfStockCount int              `json:"outOfStockCount"`
	TotalWarehouses int              `json:"totalWarehouses"`
	InventoryValue  decimal.Decimal  `json:"inventoryValue"`
	TopCategories   []CategoryCount  `json:"topCategories"`
	RecentTransfers []model.Transfer `json:"recentTransfers,omitempty"`
}

// Dashboard computes the dashboard figures. transfers may be nil when the
// viewer is not allowed to see them.
func Dashboard(items []model.InventoryItem, warehouses []model.Warehouse, transfers []model.Transfer) Stats {
	s := Stats{
		TotalWarehouses: len(warehouses),
		InventoryValue:  decimal.Zero,
	}

	counts := make(map[model.Category]int)
	for _, item := range items {
		s.TotalStock += item.Stock
		s.InventoryValue = s.InventoryValue.Add(item.Value())
		switch item.Status {
		case model.StockStatusInStock:
			s.InStockCount++
		case model.StockStatusLowStock:
			s.LowStockCount++
		case model.StockStatusOutOfStock:
			s.LowStockCount++
			s.OutOfStockCount++
		}
		counts[item.Category]++
	}

	s.TopCategories = topCategories(counts, 3)
	s.RecentTransfers = recentTransfers(transfers, RecentTransferLimit)
	return s
}

func topCategories(counts map[model.Category]int, n int) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, CategoryCount{Name: name, Count: count})
	}
	// Ties keep the display order of model.Categories; unknown categories go last.
	rank := func(c model.Category) int {
		if i := slices.Index(model.Categories, c); i >= 0 {
			return i
		}
		return len(model.Categories)
	}
	slices.SortFunc(out, func(a, b CategoryCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		if c := cmp.Compare(rank(a.Name), rank(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// recentTransfers returns up to n transfers, newest request first. Transfers
// requested on the same day keep reverse insertion order.
func recentTransfers(transfers []model.Transfer, n int) []model.Transfer {
	if len(transfers) == 0 {
		return nil
	}
	out := slices.Clone(transfers)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b model.Transfer) int {
		return cmp.Compare(b.RequestedDate, a.RequestedDate)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

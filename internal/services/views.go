package services

import "stockqr/internal/models"

func categoryNames(categories []models.Category) map[string]string {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

func productView(p models.Product, names map[string]string, defaultMinStock int) models.ProductView {
	return models.ProductView{
		Product:      p,
		CategoryName: names[p.CategoryID],
		LowStock:     p.IsLowStock(defaultMinStock),
	}
}

func transactionViews(log []models.Transaction, products []models.Product) []models.TransactionView {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	views := make([]models.TransactionView, 0, len(log))
	for _, tx := range log {
		name, ok := names[tx.ProductID]
		views = append(views, models.TransactionView{
			Transaction:    tx,
			ProductName:    name,
			ProductDeleted: !ok,
		})
	}
	return views
}

package models

import "time"

type SalesSummary struct {
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	TotalRevenue float64   `json:"total_revenue"`
	OrderCount   int       `json:"order_count"`
	ItemsSold    int       `json:"items_sold"`
}

type PopularProduct struct {
	ProductID    string  `json:"product_id,omitempty"`
	ProductName  string  `json:"product_name"`
	QuantitySold int     `json:"quantity_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

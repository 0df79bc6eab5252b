package catalog

import "github.com/shopspring/decimal"

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// defaultProducts is the compiled-in storefront inventory.
var defaultProducts = []Product{
	{ID: "p1", Title: "Minimalist Weekly Planner", Category: CategoryPlanners, Format: FormatDigital, Price: price("9.99"), Brand: "Paperloom", Rating: 4.6, Stock: 999, Image: "/img/p1.jpg"},
	{ID: "p2", Title: "Botanical Line Art Set", Category: CategoryArtPrints, Format: FormatPrinted, Price: price("24.50"), Brand: "Fernwood Studio", Rating: 4.8, Stock: 40, Image: "/img/p2.jpg"},
	{ID: "p3", Title: "Leather Bound Journal", Category: CategoryStationery, Format: FormatPhysical, Price: price("49.99"), Brand: "Oakhide", Rating: 4.7, Stock: 15, Image: "/img/p3.jpg"},
	{ID: "p4", Title: "The Quiet Garden", Category: CategoryBooks, Format: FormatPrinted, Price: price("18.00"), Brand: "Harbor Press", Rating: 4.3, Stock: 60, Image: "/img/p4.jpg"},
	{ID: "p5", Title: "Budget Tracker Spreadsheet", Category: CategoryTemplates, Format: FormatDigital, Price: price("6.99"), Brand: "Paperloom", Rating: 4.4, Stock: 999, Image: "/img/p5.jpg"},
	{ID: "p6", Title: "Watercolor Coastline Print", Category: CategoryArtPrints, Format: FormatPrinted, Price: price("32.00"), Brand: "Fernwood Studio", Rating: 4.9, Stock: 25, Image: "/img/p6.jpg"},
	{ID: "p7", Title: "Habit Tracker Bundle", Category: CategoryTemplates, Format: FormatDigital, Price: price("4.99"), Brand: "Daybreak Goods", Rating: 4.1, Stock: 999, Image: "/img/p7.jpg"},
	{ID: "p8", Title: "Brass Fountain Pen", Category: CategoryStationery, Format: FormatPhysical, Price: price("64.00"), Brand: "Oakhide", Rating: 4.5, Stock: 8, Image: "/img/p8.jpg"},
	{ID: "p9", Title: "Field Notes on Slow Living", Category: CategoryBooks, Format: FormatDigital, Price: price("12.99"), Brand: "Harbor Press", Rating: 4.2, Stock: 999, Image: "/img/p9.jpg"},
	{ID: "p10", Title: "Undated Daily Planner", Category: CategoryPlanners, Format: FormatPrinted, Price: price("27.75"), Brand: "Daybreak Goods", Rating: 4.6, Stock: 30, Image: "/img/p10.jpg"},
	{ID: "p11", Title: "Wedding Invitation Kit", Category: CategoryTemplates, Format: FormatDigital, Price: price("15.00"), Brand: "Paperloom", Rating: 4.0, Stock: 999, Image: "/img/p11.jpg"},
	{ID: "p12", Title: "Dot Grid Notebook Trio", Category: CategoryStationery, Format: FormatPhysical, Price: price("21.00"), Brand: "Fernwood Studio", Rating: 4.7, Stock: 50, Image: "/img/p12.jpg"},
}

package domain

import "github.com/shopspring/decimal"

// Categories is the fixed HSN/SAC lookup table. Order matters: suggestions are
// returned in table order. Keywords match whole words or phrases; a trailing
// "*" also matches longer words starting with the stem.
var Categories = []Category{
	{Code: "9983", Description: "Professional, technical and consulting services", Keywords: []string{"consult*", "professional", "advisory", "legal", "account*"}, SuggestedRate: decimal.NewFromInt(18)},
	{Code: "998314", Description: "IT design and development services", Keywords: []string{"software", "develop*", "website*", "app", "apps", "it services"}, SuggestedRate: decimal.NewFromInt(18)},
	{Code: "997331", Description: "Licensing of software", Keywords: []string{"licen*", "subscription*", "saas"}, SuggestedRate: decimal.NewFromInt(18)},
	{Code: "9954", Description: "Construction services", Keywords: []string{"construct*", "civil work*", "renovat*"}, SuggestedRate: decimal.NewFromInt(18)},
	{Code: "9963", Description: "Restaurant and food services", Keywords: []string{"restaurant*", "food*", "catering", "meal*"}, SuggestedRate: decimal.NewFromInt(5)},
	{Code: "9964", Description: "Passenger transport services", Keywords: []string{"taxi*", "cab", "cabs", "travel*", "flight*", "train", "trains"}, SuggestedRate: decimal.NewFromInt(5)},
	{Code: "9965", Description: "Goods transport services", Keywords: []string{"freight", "courier*", "logistic*", "shipping"}, SuggestedRate: decimal.NewFromInt(12)},
	{Code: "9972", Description: "Real estate rental services", Keywords: []string{"rent", "rental*", "lease*", "office space"}, SuggestedRate: decimal.NewFromInt(18)},
	{Code: "8471", Description: "Computers and laptops", Keywords: []string{"computer*", "laptop*", "desktop*", "server*"}, SuggestedRate: decimal.NewFromInt(18)},
	{Code: "8517", Description: "Mobile phones and telecom equipment", Keywords: []string{"phone*", "mobile*", "router*"}, SuggestedRate: decimal.NewFromInt(18)},
	{Code: "4802", Description: "Paper and stationery", Keywords: []string{"paper*", "stationery", "notebook*"}, SuggestedRate: decimal.NewFromInt(12)},
	{Code: "4901", Description: "Printed books", Keywords: []string{"book", "books"}, SuggestedRate: decimal.Zero},
	{Code: "0401", Description: "Milk and fresh dairy", Keywords: []string{"milk", "curd", "dairy"}, SuggestedRate: decimal.Zero},
	{Code: "1006", Description: "Rice", Keywords: []string{"rice"}, SuggestedRate: decimal.NewFromInt(5)},
	{Code: "3004", Description: "Medicines", Keywords: []string{"medicine*", "pharma*", "drug*"}, SuggestedRate: decimal.NewFromInt(12)},
	{Code: "6109", Description: "T-shirts and apparel", Keywords: []string{"shirt*", "t-shirt*", "apparel", "garment*", "clothing"}, SuggestedRate: decimal.NewFromInt(5)},
	{Code: "2202", Description: "Aerated beverages", Keywords: []string{"soda*", "aerated", "soft drink*"}, SuggestedRate: decimal.NewFromInt(28)},
	{Code: "8703", Description: "Motor cars", Keywords: []string{"car", "cars", "vehicle*", "automobile*"}, SuggestedRate: decimal.NewFromInt(28)},
	{Code: "9997", Description: "Other miscellaneous services", Keywords: []string{"service*", "maintenance", "repair*"}, SuggestedRate: decimal.NewFromInt(18)},
}

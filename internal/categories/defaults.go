package categories

// Default returns the built-in category table.
func Default() Table {
	return MustNew(
		Category{Name: "groceries", Keywords: []string{"SOBEYS", "SUPERSTORE", "SHOPPERS", "BULK BARN", "VICTORY MEAT", "BOUCLAIR", "COSTCO"}},
		Category{Name: "restaurant", Keywords: []string{
			"DAIRY QUEEN", "THAI EXPRESS", "TIM HORTONS", "CHESS PIECE", "PATISSERIE", "BREWING", "GRAYSTONE",
			"GOJI'S", "YOGURT", "PIZZA", "RESTAURANT", "HILTON GARDEN", "CELLAR PUB", "KITCHEN", "MCDONALD'S",
			"TIPSY MUSE", "GAHAN", "HARVEY'S", "CORA", "BREAKFAST", "LUNCH", "FORESTRY COMP", "SUBWAY", "STARBUCKS",
			"RED ROVER", "PICAROONS", "HOME DEPOT", "POUTINERIE",
		}},
		Category{Name: "hair", Keywords: []string{"AVALON", "SALONSPA"}},
		Category{Name: "rent", Keywords: []string{"CEDAR VALLEY"}},
		Category{Name: "utilities", Keywords: []string{"EnergieNB", "Power"}},
		Category{Name: "internet", Keywords: []string{"BELL ALIANT"}},
		Category{Name: "memberships", Keywords: []string{"Spotify", "Dollar Shave Club", "Prime Member"}},
		Category{Name: "fuel", Keywords: []string{"CIRCLE K", "IRVING", "PETROCAN"}},
		Category{Name: "insurance", Keywords: []string{"CO OPERATORS"}},
		Category{Name: "maintenance", Keywords: []string{"SUTHERLAND", "HONDA"}},
		Category{Name: "registration", Keywords: []string{"SERVICE NB"}},
		Category{Name: "accessories", Keywords: []string{"RALLYE", "MOTOPLEX"}},
		Category{Name: "toll"},
		Category{Name: "su", Keywords: []string{"PETSMART"}},
		Category{Name: "cell"},
		Category{Name: "clothing"},
		Category{Name: "financial_fees", Keywords: []string{"Service Charge", "Overdrawn Handling", "SCOTIA SCCP PREMIUM"}},
	)
}

// Package testutil holds fixtures shared by tests across packages.
package testutil

import "github.com/roach88/seek/internal/item"

// Rec builds an item record.
func Rec(name, category string, quantity int, quality item.Quality, tags ...string) *item.Record {
	return &item.Record{
		ItemName:     name,
		ItemCategory: category,
		ItemQuantity: quantity,
		ItemQuality:  quality,
		ItemTags:     tags,
	}
}

// Backpack returns a small mixed inventory. Names are unique.
func Backpack() []*item.Record {
	return []*item.Record{
		Rec("Wood", "Resource", 50, item.QualityNormal, "wood", "building"),
		Rec("Driftwood", "Trash", 1, item.QualityNormal, "wood", "beach"),
		Rec("Hardwood", "Resource", 12, item.QualitySilver, "wood", "building"),
		Rec("Stone", "Resource", 30, item.QualityNormal, "building"),
		Rec("Wood-Stone Hybrid", "Artifact", 1, item.QualityGold),
		Rec("Copper Ore", "Resource", 5, item.QualityNormal, "ore", "metal"),
		Rec("Parsnip", "Vegetable", 7, item.QualityGold, "crop", "spring"),
		Rec("Sardine", "Fish", 2, item.QualityIridium, "fish", "ocean"),
		Rec("Largemouth Bass", "Fish", 1, item.QualityGold, "fish", "lake"),
	}
}

// Names returns the names of items in order.
func Names[T item.Item](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name()
	}
	return out
}

// Chests returns a few containers holding Backpack-style items.
func Chests() []*item.Chest {
	return []*item.Chest{
		{
			ID:        "shed",
			ChestName: "Shed Chest",
			Contents: []*item.Record{
				Rec("Wood", "Resource", 999, item.QualityNormal, "wood"),
				Rec("Stone", "Resource", 400, item.QualityNormal),
			},
		},
		{
			ID:        "fridge",
			ChestName: "Fridge",
			Contents: []*item.Record{
				Rec("Parsnip", "Vegetable", 3, item.QualityGold, "crop"),
				Rec("Sardine", "Fish", 2, item.QualitySilver, "fish"),
			},
		},
		{
			ID:        "empty",
			ChestName: "Woodland Box",
		},
	}
}

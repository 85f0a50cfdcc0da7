// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Category is the closed set of portfolio categories.
type Category string

const (
	CategoryVideoEditing      Category = "Video Editing"
	CategoryThumbnailDesign   Category = "Thumbnail Design"
	CategoryWebDevelopment    Category = "Web Development"
	CategoryMerchandiseDesign Category = "Merchandise Design"
	CategoryPosterDesign      Category = "Poster Design"
)

var categories = []Category{
	CategoryVideoEditing,
	CategoryThumbnailDesign,
	CategoryWebDevelopment,
	CategoryMerchandiseDesign,
	CategoryPosterDesign,
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

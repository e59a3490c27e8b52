package models

// Category groups menu items for filtering.
// Schema matches the upstream /api/v1/categories response.
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

// MenuItem represents a sellable item on the menu.
// Description and ImageURL are nullable upstream and decode to nil.
type MenuItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       int64   `json:"price"`
	ImageURL    *string `json:"image_url"`
	IsAvailable bool    `json:"is_available"`
	CategoryID  int64   `json:"category_id"`
}

// DescriptionText returns the description or an empty string when absent.
func (m MenuItem) DescriptionText() string {
	if m.Description == nil {
		return ""
	}
	return *m.Description
}

// Image returns the image URL, or fallback when the item has none.
func (m MenuItem) Image(fallback string) string {
	if m.ImageURL == nil || *m.ImageURL == "" {
		return fallback
	}
	return *m.ImageURL
}

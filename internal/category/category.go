package category

// Category is a named classification bucket for expenses.
// Default categories are seeded at first run and cannot be renamed,
// recolored, or deleted; only custom categories are fully mutable.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	IsDefault bool   `json:"isDefault"`
}

// OtherID is the fallback bucket consumers use for expenses whose category
// reference no longer resolves.
const OtherID = "other"

// Defaults returns a fresh copy of the seeded category set.
func Defaults() []*Category {
	seed := []Category{
		{ID: "food", Name: "Food & Drinks", Icon: "utensils", Color: "#FF6B6B"},
		{ID: "transport", Name: "Transport", Icon: "car", Color: "#4D96FF"},
		{ID: "shopping", Name: "Shopping", Icon: "shopping-bag", Color: "#9B5DE5"},
		{ID: "entertainment", Name: "Entertainment", Icon: "film", Color: "#F15BB5"},
		{ID: "health", Name: "Health", Icon: "heart", Color: "#00BBF9"},
		{ID: "housing", Name: "Housing", Icon: "home", Color: "#00F5D4"},
		{ID: "utilities", Name: "Utilities", Icon: "plug", Color: "#FEE440"},
		{ID: OtherID, Name: "Other", Icon: "ellipsis-h", Color: "#A0A0A0"},
	}

	out := make([]*Category, len(seed))
	for i := range seed {
		c := seed[i]
		c.IsDefault = true
		out[i] = &c
	}

	return out
}

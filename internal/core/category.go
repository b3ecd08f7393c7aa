package core

// Category is a registry entry for a spending/income bucket. Transactions and
// budgets join to it by Name, not by ID.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Categories is the fixed process-wide catalog. Order is the default
// presentation order for selection widgets; the last entry is the fallback.
var Categories = []Category{
	{ID: "food", Name: "Food & Dining", Icon: "🍽️", Color: "#EF4444"},
	{ID: "transportation", Name: "Transportation", Icon: "🚗", Color: "#3B82F6"},
	{ID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "#8B5CF6"},
	{ID: "entertainment", Name: "Entertainment", Icon: "🎬", Color: "#F59E0B"},
	{ID: "bills", Name: "Bills & Utilities", Icon: "💡", Color: "#10B981"},
	{ID: "healthcare", Name: "Healthcare", Icon: "🏥", Color: "#EC4899"},
	{ID: "education", Name: "Education", Icon: "📚", Color: "#6366F1"},
	{ID: "travel", Name: "Travel", Icon: "✈️", Color: "#14B8A6"},
	{ID: "fitness", Name: "Fitness", Icon: "💪", Color: "#F97316"},
	{ID: "other", Name: "Other", Icon: "📦", Color: "#6B7280"},
}

// LookupByName resolves a category by display name. Unknown names resolve to
// the fallback "Other" entry, never an error.
func LookupByName(name string) Category {
	for _, c := range Categories {
		if c.Name == name {
			return c
		}
	}
	return Categories[len(Categories)-1]
}

package models

// Category — элемент фиксированного набора категорий займов.
// Цвет используется только для отображения.
type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Categories — закрытый набор из шести категорий займов.
var Categories = []Category{
	{Value: "personal", Label: "Personal Loan", Color: "#3B82F6"},
	{Value: "business", Label: "Business Loan", Color: "#10B981"},
	{Value: "mortgage", Label: "Mortgage", Color: "#8B5CF6"},
	{Value: "auto", Label: "Auto Loan", Color: "#F59E0B"},
	{Value: "education", Label: "Education", Color: "#EC4899"},
	{Value: "other", Label: "Other", Color: "#6B7280"},
}

// CategoryLabel возвращает отображаемое название категории.
// Для неизвестного значения возвращает само значение.
func CategoryLabel(value string) string {
	for _, c := range Categories {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

// CategoryColor возвращает цвет категории, для неизвестной — серый.
func CategoryColor(value string) string {
	for _, c := range Categories {
		if c.Value == value {
			return c.Color
		}
	}
	return "#6B7280"
}

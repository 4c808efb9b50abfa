package expenses

// Category is the fixed client-side presentation of an expense label.
type Category struct {
	Key    string    `json:"key"`
	Label  string    `json:"label"`
	Icon   string    `json:"icon"`
	Colors [2]string `json:"colors"`
}

var (
	CategoryFood          = Category{Key: "food", Label: "餐饮", Icon: "cart.fill", Colors: [2]string{"F59E0B", "D97706"}}
	CategoryTransport     = Category{Key: "transport", Label: "交通", Icon: "car.fill", Colors: [2]string{"3B82F6", "2563EB"}}
	CategoryShopping      = Category{Key: "shopping", Label: "购物", Icon: "bag.fill", Colors: [2]string{"EC4899", "DB2777"}}
	CategoryEntertainment = Category{Key: "entertainment", Label: "娱乐", Icon: "gamecontroller.fill", Colors: [2]string{"8B5CF6", "7C3AED"}}
	CategoryOther         = Category{Key: "other", Label: "其他", Icon: "ellipsis.circle.fill", Colors: [2]string{"64748B", "475569"}}
)

func Categories() []Category {
	return []Category{CategoryFood, CategoryTransport, CategoryShopping, CategoryEntertainment, CategoryOther}
}

// CategoryFor maps a stored label to its presentation. Free-text labels use
// the "other" style but keep their own text.
func CategoryFor(label string) Category {
	for _, category := range Categories() {
		if category.Label == label || category.Key == label {
			return category
		}
	}
	custom := CategoryOther
	custom.Label = label
	return custom
}

package categories

import "github.com/osadchistudio/family-finance-sub001/internal/model"

// DefaultSet returns the starter category list written by `famfin init`.
func DefaultSet() []model.Category {
	return []model.Category{
		{ID: "salary", Name: "משכורת", Color: "#2e7d32", Icon: "briefcase", Type: model.CategoryTypeIncome},
		{ID: "allowance", Name: "קצבאות", Color: "#388e3c", Icon: "hand-coins", Type: model.CategoryTypeIncome},
		{ID: "other-income", Name: "הכנסות אחרות", Color: "#43a047", Icon: "plus", Type: model.CategoryTypeIncome},
		{ID: "groceries", Name: "מזון וסופר", Color: "#ef6c00", Icon: "cart", Type: model.CategoryTypeExpense},
		{ID: "dining", Name: "מסעדות ובתי קפה", Color: "#f57c00", Icon: "utensils", Type: model.CategoryTypeExpense},
		{ID: "housing", Name: "דיור", Color: "#5d4037", Icon: "home", Type: model.CategoryTypeExpense},
		{ID: "utilities", Name: "חשבונות בית", Color: "#455a64", Icon: "bolt", Type: model.CategoryTypeExpense},
		{ID: "transport", Name: "תחבורה", Color: "#1565c0", Icon: "car", Type: model.CategoryTypeExpense},
		{ID: "health", Name: "בריאות", Color: "#c62828", Icon: "heart-pulse", Type: model.CategoryTypeExpense},
		{ID: "education", Name: "חינוך", Color: "#6a1b9a", Icon: "book", Type: model.CategoryTypeExpense},
		{ID: "entertainment", Name: "פנאי ובידור", Color: "#00838f", Icon: "film", Type: model.CategoryTypeExpense},
		{ID: "shopping", Name: "קניות", Color: "#ad1457", Icon: "bag", Type: model.CategoryTypeExpense},
		{ID: "insurance", Name: "ביטוחים", Color: "#4527a0", Icon: "shield", Type: model.CategoryTypeExpense},
		{ID: "other-expense", Name: "אחר", Color: "#616161", Icon: "dots", Type: model.CategoryTypeExpense},
	}
}

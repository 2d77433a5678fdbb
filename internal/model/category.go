package model

// CategoryType separates income categories from expense categories.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category is a spending or income category. The set is managed by the
// user and consumed read-only by the matching engine.
type Category struct {
	ID    string
	Name  string
	Color string
	Icon  string
	Type  CategoryType
}

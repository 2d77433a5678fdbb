package model

// CategoryKeyword maps a keyword to a category. Exact entries match the
// whole normalized description; the rest match as substrings. Higher
// priority wins among exact entries.
type CategoryKeyword struct {
	CategoryID string
	Keyword    string
	IsExact    bool
	Priority   int
}

// RecurringKeyword marks any description containing the keyword as a
// recurring charge.
type RecurringKeyword struct {
	Keyword string
}

package domain

// ClassifyInput asks for both verdicts on each value
type ClassifyInput struct {
	Values []string `json:"values" validate:"required,min=1,max=500" example:"[\"2021-03-15\",\"hello\"]"`
}

// ClassifyRow is one classified value
type ClassifyRow struct {
	Value         string `json:"value"           example:"2021-03-15"`
	LooksLikeDate bool   `json:"looks_like_date" example:"true"`
	IsDate        bool   `json:"is_date"         example:"true"`
}

// ClassifyOutput holds rows in input order
type ClassifyOutput struct {
	Rows []ClassifyRow `json:"rows"`
}

// FormatInput is one formatting call
// an empty locale falls back to the negotiated request locale then the configured default
type FormatInput struct {
	Date         any    `json:"date"                    validate:"required"`
	FormatString string `json:"format_string,omitempty" validate:"omitempty,max=200" example:"YYYY/MM/DD"`
	FromNow      bool   `json:"from_now,omitempty"      example:"false"`
	Difference   string `json:"difference,omitempty"    validate:"omitempty,max=16" example:"days"`
	Locale       string `json:"locale,omitempty"        validate:"omitempty,max=35,locale_tag" example:"en"`
}

// FormatOutput carries a string, a number or the untouched input
type FormatOutput struct {
	Result any `json:"result"`
}

// ResolveInput runs the date resolver over an upstream that yields Value
type ResolveInput struct {
	Value any            `json:"value"`
	Args  map[string]any `json:"args,omitempty"`
}

// ResolveOutput is the resolver result, null when the upstream value was null
type ResolveOutput struct {
	Result any `json:"result"`
}

// LayoutsOutput describes the compiled catalog
type LayoutsOutput struct {
	Templates []string `json:"templates"`
	Pattern   string   `json:"pattern"`
	Lengths   []int    `json:"lengths"`
	Locales   []string `json:"locales"`
}

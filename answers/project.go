package answers

const (
	AliasFrom  = "FromQuery"
	AliasTo    = "ToQuery"
	AliasTotal = "TotalQuery"
)

// Result is the query handler body: the well known aliases as plain text
// next to the full alias map.
type Result struct {
	From  string            `json:"from"`
	To    string            `json:"to"`
	Total string            `json:"total"`
	Raw   map[string]Answer `json:"raw"`
}

func Project(resolved map[string]Answer) Result {
	if resolved == nil {
		resolved = map[string]Answer{}
	}
	return Result{
		From:  resolved[AliasFrom].Text,
		To:    resolved[AliasTo].Text,
		Total: resolved[AliasTotal].Text,
		Raw:   resolved,
	}
}

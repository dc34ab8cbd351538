package category

// DefaultCatchAll is the built-in catch-all folder name.
const DefaultCatchAll = "Others"

var defaultRules = []Rule{
	{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"}},
	{Name: "Documents", Extensions: []string{".pdf", ".docx", ".doc", ".txt", ".pptx", ".xlsx"}},
	{Name: "Videos", Extensions: []string{".mp4", ".mov", ".avi", ".mkv"}},
	{Name: "Music", Extensions: []string{".mp3", ".wav", ".aac"}},
	{Name: "Archives", Extensions: []string{".zip", ".rar", ".7z", ".tar", ".gz"}},
	{Name: "Scripts", Extensions: []string{".py", ".js", ".sh", ".bat"}},
}

// DefaultRules returns a copy of the built-in rules.
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	for i, rule := range defaultRules {
		out[i] = Rule{Name: rule.Name, Extensions: append([]string(nil), rule.Extensions...)}
	}
	return out
}

// Default returns the built-in table with the given catch-all name. An empty
// name selects DefaultCatchAll.
func Default(catchAll string) *Table {
	if catchAll == "" {
		catchAll = DefaultCatchAll
	}
	table, err := NewTable(DefaultRules(), catchAll)
	if err != nil {
		table, _ = NewTable(DefaultRules(), DefaultCatchAll)
	}
	return table
}

package assistant

// Profile describes the simulated assistant shown to the frontend.
type Profile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Heading     string   `json:"heading"`
	Prompt      string   `json:"prompt"`
	Description string   `json:"description,omitempty"`
	Expertise   []string `json:"expertise,omitempty"` // 专业领域
}

// Default returns the BigQuery assistant profile.
func Default() Profile {
	return Profile{
		ID:          "bigquery-assistant",
		Name:        "TrueX BigQuery Assistant",
		Title:       "AI Assistant",
		Heading:     "Welcome to AI Assistant",
		Prompt:      "How can I help you today?",
		Description: "Simulated assistant for BigQuery data analysis, SQL authoring and cost tuning.",
		Expertise: []string{
			"SQL development",
			"Data analysis",
			"Schema design",
			"Performance tuning",
			"Cost management",
		},
	}
}

// Clone returns a copy that does not share the expertise slice.
func (p Profile) Clone() Profile {
	p.Expertise = append([]string(nil), p.Expertise...)
	return p
}

package catalog

// Category maps a storefront category id to the search term the remote
// catalog understands. The "all" category carries no term and is served from
// the new-releases batch instead of a search.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Query string `json:"query"`
}

// Categories is the fixed storefront category list, shared by the catalog
// page and the landing sections.
var Categories = []Category{
	{ID: "all", Name: "All Books", Query: ""},
	{ID: "javascript", Name: "JavaScript", Query: "javascript"},
	{ID: "python", Name: "Python", Query: "python"},
	{ID: "react", Name: "React", Query: "react"},
	{ID: "nodejs", Name: "Node.js", Query: "nodejs"},
	{ID: "data", Name: "Data Science", Query: "data-science"},
	{ID: "mobile", Name: "Mobile Dev", Query: "mobile-development"},
}

// CategoryQuery resolves a category id to its remote search term. Unknown
// ids behave like "all".
func CategoryQuery(id string) string {
	for _, c := range Categories {
		if c.ID == id {
			return c.Query
		}
	}
	return ""
}

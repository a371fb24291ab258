// Package tools holds the action catalog the assistant may use against the
// course database, and the executor that runs catalog actions.
package tools

import "github.com/tmc/langchaingo/llms"

// Action names. Adding one requires a catalog entry below AND a branch in
// Executor.execute; the two must stay in lock-step.
const (
	ActionCountAll        = "count_all"
	ActionCountByCategory = "count_by_category"
	ActionFindByCategory  = "find_by_category"
	ActionFindCourse      = "find_course"
	ActionFindByPrice     = "find_by_price"
)

// Entry describes one permitted catalog action. The catalog is both the
// capability allow-list advertised to the model and the schema the executor
// validates against.
type Entry struct {
	Name          string
	Description   string
	ValueRequired bool
	ValueHint     string
}

// catalog is the full static action catalog, immutable after startup.
var catalog = []Entry{
	{
		Name:        ActionCountAll,
		Description: "Get total course counts grouped by category.",
	},
	{
		Name:          ActionCountByCategory,
		Description:   "Get the total number of courses in a specific category.",
		ValueRequired: true,
		ValueHint:     "Category name, e.g. 'Web Development'",
	},
	{
		Name:          ActionFindByCategory,
		Description:   "List the top 5 courses belonging to a specific category.",
		ValueRequired: true,
		ValueHint:     "Category name, e.g. 'Development'",
	},
	{
		Name:          ActionFindCourse,
		Description:   "Search for courses by title or keyword. Returns max 5 results.",
		ValueRequired: true,
		ValueHint:     "Search term, e.g. 'React'",
	},
	{
		Name:          ActionFindByPrice,
		Description:   "Search for courses at or below a specified maximum price. Returns max 5 results.",
		ValueRequired: true,
		ValueHint:     "Maximum price, e.g. '29.99'",
	},
}

// Catalog returns the action catalog entries in declaration order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for name, if any.
func Lookup(name string) (Entry, bool) {
	for _, e := range catalog {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Definitions renders the catalog as langchaingo function declarations for
// the reasoning step. Every action takes at most one string argument, "value".
func Definitions() []llms.Tool {
	defs := make([]llms.Tool, 0, len(catalog))
	for _, e := range catalog {
		properties := map[string]any{}
		var required []string
		if e.ValueRequired {
			properties["value"] = map[string]any{
				"type":        "string",
				"description": e.ValueHint,
			}
			required = []string{"value"}
		}

		defs = append(defs, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        e.Name,
				Description: e.Description,
				Parameters: map[string]any{
					"type":       "object",
					"properties": properties,
					"required":   required,
				},
			},
		})
	}
	return defs
}

package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	entry, ok := Lookup(ActionFindByPrice)
	require.True(t, ok)
	assert.Equal(t, ActionFindByPrice, entry.Name)
	assert.True(t, entry.ValueRequired)

	_, ok = Lookup("delete_course")
	assert.False(t, ok)
}

// Every catalog entry must have a matching executor branch. A name the
// executor does not know would surface as an "Invalid action" failure even
// though the model was told it may use it.
func TestCatalogMatchesExecutor(t *testing.T) {
	e := NewExecutor(&fakeStore{}, nil, nil)
	for _, entry := range Catalog() {
		result := e.Execute(context.Background(), entry.Name, "1")
		assert.NotContains(t, result.Error, "Invalid action", "action %q", entry.Name)
	}
}

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, len(Catalog()))

	byName := map[string]map[string]any{}
	for _, d := range defs {
		require.NotNil(t, d.Function)
		assert.Equal(t, "function", d.Type)
		params, ok := d.Function.Parameters.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "object", params["type"])
		byName[d.Function.Name] = params
	}

	// count_all takes no argument.
	assert.Empty(t, byName[ActionCountAll]["properties"])
	assert.Empty(t, byName[ActionCountAll]["required"])

	// The others declare a single required string value.
	params := byName[ActionCountByCategory]
	props, ok := params["properties"].(map[string]any)
	require.True(t, ok)
	value, ok := props["value"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", value["type"])
	assert.Equal(t, []string{"value"}, params["required"])
}

package tools

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/skillmorph/assistant-go/internal/db"
	"github.com/skillmorph/assistant-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	counts       []models.CategoryCount
	count        int64
	courses      []models.Course
	err          error
	lastCategory string
	lastTerm     string
	lastMaxPrice float64
	lastLimit    int
}

func (f *fakeStore) CategoryCounts(context.Context) ([]models.CategoryCount, error) {
	return f.counts, f.err
}

func (f *fakeStore) CountByCategory(_ context.Context, category string) (int64, error) {
	f.lastCategory = category
	return f.count, f.err
}

func (f *fakeStore) CoursesByCategory(_ context.Context, category string, limit int) ([]models.Course, error) {
	f.lastCategory = category
	f.lastLimit = limit
	return f.courses, f.err
}

func (f *fakeStore) SearchCourses(_ context.Context, term string, limit int) ([]models.Course, error) {
	f.lastTerm = term
	f.lastLimit = limit
	return f.courses, f.err
}

func (f *fakeStore) CoursesByMaxPrice(_ context.Context, maxPrice float64, limit int) ([]models.Course, error) {
	f.lastMaxPrice = maxPrice
	f.lastLimit = limit
	return f.courses, f.err
}

func TestExecuteCountAll(t *testing.T) {
	store := &fakeStore{counts: []models.CategoryCount{
		{Category: "Design", Count: 2},
		{Category: "Development", Count: 7},
	}}
	e := NewExecutor(store, nil, nil)

	result := e.Execute(context.Background(), ActionCountAll, "")

	assert.True(t, result.Success)
	assert.Equal(t, ActionCountAll, result.Action)
	assert.Equal(t, store.counts, result.Data)
	assert.Empty(t, result.Error)
}

func TestExecuteCountByCategory(t *testing.T) {
	store := &fakeStore{count: 7}
	e := NewExecutor(store, nil, nil)

	result := e.Execute(context.Background(), ActionCountByCategory, "development")

	assert.True(t, result.Success)
	assert.Equal(t, int64(7), result.Data)
	assert.Equal(t, "development", store.lastCategory)
}

func TestExecuteFindByCategorySummarizes(t *testing.T) {
	store := &fakeStore{courses: []models.Course{
		{Title: "Go Basics", Category: "Development", DurationSeconds: 5400, Instructor: "ada"},
	}}
	e := NewExecutor(store, nil, nil)

	result := e.Execute(context.Background(), ActionFindByCategory, "Development")

	require.True(t, result.Success)
	summaries, ok := result.Data.([]CourseSummary)
	require.True(t, ok)
	require.Len(t, summaries, 1)
	assert.Equal(t, "1.5 hours", summaries[0].Duration)
	assert.Equal(t, maxResults, store.lastLimit)
}

func TestExecuteFindCourse(t *testing.T) {
	store := &fakeStore{}
	e := NewExecutor(store, nil, nil)

	result := e.Execute(context.Background(), ActionFindCourse, "React")

	assert.True(t, result.Success)
	assert.Equal(t, "React", store.lastTerm)
	assert.Empty(t, result.Data.([]CourseSummary))
}

func TestExecuteFindByPrice(t *testing.T) {
	store := &fakeStore{}
	e := NewExecutor(store, nil, nil)

	result := e.Execute(context.Background(), ActionFindByPrice, " 29.99 ")

	assert.True(t, result.Success)
	assert.Equal(t, 29.99, store.lastMaxPrice)
}

func TestExecuteValidation(t *testing.T) {
	tests := []struct {
		name      string
		action    string
		value     string
		wantError string
	}{
		{
			name:      "count_by_category without value",
			action:    ActionCountByCategory,
			value:     "  ",
			wantError: "Category name is required for 'count_by_category' action.",
		},
		{
			name:      "find_by_category without value",
			action:    ActionFindByCategory,
			value:     "",
			wantError: "Category name is required for 'find_by_category' action.",
		},
		{
			name:      "find_course without value",
			action:    ActionFindCourse,
			value:     "",
			wantError: "Search term is required for 'find_course' action.",
		},
		{
			name:      "find_by_price without value",
			action:    ActionFindByPrice,
			value:     "",
			wantError: "Maximum price is required for 'find_by_price' action.",
		},
		{
			name:      "find_by_price with non-numeric value",
			action:    ActionFindByPrice,
			value:     "cheap",
			wantError: "Value for 'find_by_price' must be a valid number (max price).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExecutor(&fakeStore{}, nil, nil)
			result := e.Execute(context.Background(), tt.action, tt.value)
			assert.False(t, result.Success)
			assert.Equal(t, tt.wantError, result.Error)
			assert.Nil(t, result.Data)
		})
	}
}

func TestExecuteUnknownAction(t *testing.T) {
	e := NewExecutor(&fakeStore{}, nil, nil)

	result := e.Execute(context.Background(), "count_everything", "")

	assert.False(t, result.Success)
	assert.Equal(t,
		"Invalid action: 'count_everything'. Allowed actions: 'count_all', 'count_by_category', 'find_course', 'find_by_price', 'find_by_category'.",
		result.Error)
}

func TestExecuteStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	e := NewExecutor(store, nil, nil)

	result := e.Execute(context.Background(), ActionCountAll, "")

	assert.False(t, result.Success)
	assert.Equal(t, "connection refused", result.Error)
}

func TestExecuteMissingSchemaGetsStableMessage(t *testing.T) {
	store := &fakeStore{err: fmt.Errorf("category counts: %w", db.ErrSchemaMissing)}
	e := NewExecutor(store, nil, nil)

	result := e.Execute(context.Background(), ActionCountAll, "")

	assert.False(t, result.Success)
	assert.Equal(t, "The course catalog is not initialized.", result.Error)
}

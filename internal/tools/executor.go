package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/skillmorph/assistant-go/internal/db"
	"github.com/skillmorph/assistant-go/internal/metrics"
	"github.com/skillmorph/assistant-go/internal/models"
)

// maxResults bounds every list-shaped action.
const maxResults = 5

// Store is the read-only view of the course catalog the executor needs.
// internal/db implements it with PostgreSQL.
type Store interface {
	CategoryCounts(ctx context.Context) ([]models.CategoryCount, error)
	CountByCategory(ctx context.Context, category string) (int64, error)
	CoursesByCategory(ctx context.Context, category string, limit int) ([]models.Course, error)
	SearchCourses(ctx context.Context, term string, limit int) ([]models.Course, error)
	CoursesByMaxPrice(ctx context.Context, maxPrice float64, limit int) ([]models.Course, error)
}

// QueryResult is the tagged outcome of one catalog action. It is what gets
// serialized into a tool message; failures travel through it too, never as
// Go errors past this boundary.
type QueryResult struct {
	Success bool   `json:"success"`
	Action  string `json:"action,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Executor maps one validated (action, value) pair onto exactly one
// parameterized catalog read. Value is always a bound parameter, never
// interpolated.
type Executor struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewExecutor creates an executor over the given store. Logger and collector
// may be nil.
func NewExecutor(store Store, logger *slog.Logger, collector *metrics.Collector) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{store: store, logger: logger, metrics: collector}
}

// Execute runs one catalog action and returns a tagged result.
func (e *Executor) Execute(ctx context.Context, action, value string) QueryResult {
	start := time.Now()
	result := e.execute(ctx, action, value)
	if e.metrics != nil {
		e.metrics.RecordTiming(metrics.OpCatalogQuery, time.Since(start))
	}
	return result
}

func (e *Executor) execute(ctx context.Context, action, value string) QueryResult {
	switch action {
	case ActionCountAll:
		counts, err := e.store.CategoryCounts(ctx)
		if err != nil {
			return e.storeFailure(action, err)
		}
		return QueryResult{Success: true, Action: action, Data: counts}

	case ActionCountByCategory:
		if fail, ok := requireValue(action, value, "Category name"); !ok {
			return fail
		}
		count, err := e.store.CountByCategory(ctx, value)
		if err != nil {
			return e.storeFailure(action, err)
		}
		return QueryResult{Success: true, Action: action, Data: count}

	case ActionFindByCategory:
		if fail, ok := requireValue(action, value, "Category name"); !ok {
			return fail
		}
		courses, err := e.store.CoursesByCategory(ctx, value, maxResults)
		if err != nil {
			return e.storeFailure(action, err)
		}
		return QueryResult{Success: true, Action: action, Data: summarizeCourses(courses)}

	case ActionFindCourse:
		if fail, ok := requireValue(action, value, "Search term"); !ok {
			return fail
		}
		courses, err := e.store.SearchCourses(ctx, value, maxResults)
		if err != nil {
			return e.storeFailure(action, err)
		}
		return QueryResult{Success: true, Action: action, Data: summarizeCourses(courses)}

	case ActionFindByPrice:
		if fail, ok := requireValue(action, value, "Maximum price"); !ok {
			return fail
		}
		maxPrice, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return QueryResult{
				Success: false,
				Error:   fmt.Sprintf("Value for '%s' must be a valid number (max price).", ActionFindByPrice),
			}
		}
		courses, err := e.store.CoursesByMaxPrice(ctx, maxPrice, maxResults)
		if err != nil {
			return e.storeFailure(action, err)
		}
		return QueryResult{Success: true, Action: action, Data: summarizeCourses(courses)}

	default:
		return QueryResult{
			Success: false,
			Error: fmt.Sprintf("Invalid action: '%s'. Allowed actions: '%s', '%s', '%s', '%s', '%s'.",
				action, ActionCountAll, ActionCountByCategory, ActionFindCourse,
				ActionFindByPrice, ActionFindByCategory),
		}
	}
}

// storeFailure logs a data-access error for operators and converts it into a
// tagged failure for the conversation.
func (e *Executor) storeFailure(action string, err error) QueryResult {
	e.logger.Error("catalog query failed", "action", action, "error", err)
	msg := err.Error()
	if errors.Is(err, db.ErrSchemaMissing) {
		msg = "The course catalog is not initialized."
	}
	if msg == "" {
		msg = "Failed to execute database query."
	}
	return QueryResult{Success: false, Error: msg}
}

// requireValue rejects blank values for actions that need one. The second
// return is false when validation failed.
func requireValue(action, value, label string) (QueryResult, bool) {
	if strings.TrimSpace(value) == "" {
		return QueryResult{
			Success: false,
			Error:   fmt.Sprintf("%s is required for '%s' action.", label, action),
		}, false
	}
	return QueryResult{}, true
}

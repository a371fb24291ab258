package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/skillmorph/assistant-go/internal/models"
)

// courseColumns is the projection shared by every course-list query. Duration
// stays in raw seconds here; presentation formatting happens in the tools
// package. The instructor name is resolved from the owning user.
const courseColumns = `
	title,
	category,
	price::float8,
	duration,
	description,
	COALESCE((SELECT username FROM users WHERE user_id = courses.instructor_id), '') AS instructor`

// missingPriceSentinel stands in for NULL prices in the max-price filter so
// unpriced courses are excluded under any realistic budget.
const missingPriceSentinel = "99999.00"

// CategoryCounts returns course counts per category, ordered by category name.
// Zero-duration courses (drafts with no published videos) are excluded.
func (c *Client) CategoryCounts(ctx context.Context) ([]models.CategoryCount, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT category, COUNT(*) AS count
		FROM courses
		WHERE duration > 0
		GROUP BY category
		ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("category counts: %w", wrapQueryError(err))
	}
	defer rows.Close()

	var counts []models.CategoryCount
	for rows.Next() {
		var cc models.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, fmt.Errorf("category counts scan: %w", err)
		}
		counts = append(counts, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category counts: %w", wrapQueryError(err))
	}
	return counts, nil
}

// CountByCategory returns the number of courses in a category,
// case-insensitive exact match.
func (c *Client) CountByCategory(ctx context.Context, category string) (int64, error) {
	var count int64
	err := c.pool.QueryRow(ctx, `
		SELECT COUNT(*) AS count
		FROM courses
		WHERE category ILIKE $1 AND duration > 0`, category).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count by category: %w", wrapQueryError(err))
	}
	return count, nil
}

// CoursesByCategory returns up to limit courses in a category,
// case-insensitive exact match, database order.
func (c *Client) CoursesByCategory(ctx context.Context, category string, limit int) ([]models.Course, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT`+courseColumns+`
		FROM courses
		WHERE category ILIKE $1
		AND duration > 0
		LIMIT $2`, category, limit)
	if err != nil {
		return nil, fmt.Errorf("courses by category: %w", wrapQueryError(err))
	}
	return scanCourses(rows, "courses by category")
}

// SearchCourses returns up to limit courses whose title or description
// contains the term, case-insensitive.
func (c *Client) SearchCourses(ctx context.Context, term string, limit int) ([]models.Course, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT`+courseColumns+`
		FROM courses
		WHERE (title ILIKE $1 OR description ILIKE $1)
		AND duration > 0
		LIMIT $2`, "%"+term+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search courses: %w", wrapQueryError(err))
	}
	return scanCourses(rows, "search courses")
}

// CoursesByMaxPrice returns up to limit courses priced at or below maxPrice,
// most expensive first. NULL prices are treated as the sentinel, so they only
// show up under absurdly high budgets.
func (c *Client) CoursesByMaxPrice(ctx context.Context, maxPrice float64, limit int) ([]models.Course, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT`+courseColumns+`
		FROM courses
		WHERE COALESCE(price, `+missingPriceSentinel+`) <= $1
		AND duration > 0
		ORDER BY price DESC
		LIMIT $2`, maxPrice, limit)
	if err != nil {
		return nil, fmt.Errorf("courses by max price: %w", wrapQueryError(err))
	}
	return scanCourses(rows, "courses by max price")
}

// scanCourses drains rows into course models, closing the rows on return.
func scanCourses(rows pgx.Rows, op string) ([]models.Course, error) {
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.Title,
			&course.Category,
			&course.Price,
			&course.DurationSeconds,
			&course.Description,
			&course.Instructor,
		); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, wrapQueryError(err))
	}
	return courses, nil
}

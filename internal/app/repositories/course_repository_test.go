package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
)

func TestBuildCourseListQuery_Defaults(t *testing.T) {
	sql, args, err := buildCourseListQuery(dto.CourseListParams{Page: 1, Limit: 20}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM courses c")
	assert.Contains(t, sql, "LEFT JOIN departments d ON c.department_id = d.id")
	assert.Contains(t, sql, "ORDER BY c.id ASC")
	assert.Contains(t, sql, "LIMIT 20")
	assert.Contains(t, sql, "OFFSET 0")
	assert.Empty(t, args)
}

func TestBuildCourseListQuery_BroadSearch(t *testing.T) {
	sql, args, err := buildCourseListQuery(dto.CourseListParams{
		Query: "algo", Page: 1, Limit: 20,
	}).ToSql()
	require.NoError(t, err)

	// Broad search matches name, code and teacher name with one pattern each.
	assert.Contains(t, sql, "c.name ILIKE $1")
	assert.Contains(t, sql, "c.course_code ILIKE $2")
	assert.Contains(t, sql, "t2.name ILIKE $3")
	assert.Equal(t, []interface{}{"%algo%", "%algo%", "%algo%"}, args)
}

func TestBuildCourseListQuery_NameFieldOnly(t *testing.T) {
	sql, args, err := buildCourseListQuery(dto.CourseListParams{
		Query: "algo", Field: "name", Page: 1, Limit: 20,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "c.name ILIKE $1")
	assert.NotContains(t, sql, "course_code ILIKE")
	assert.NotContains(t, sql, "t2.name")
	assert.Equal(t, []interface{}{"%algo%"}, args)
}

func TestBuildCourseListQuery_DepartmentFilter(t *testing.T) {
	dept := int64(3)
	sql, args, err := buildCourseListQuery(dto.CourseListParams{
		Department: &dept, Page: 2, Limit: 10,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "c.department_id = $1")
	assert.Contains(t, sql, "LIMIT 10")
	assert.Contains(t, sql, "OFFSET 10")
	assert.Equal(t, []interface{}{dept}, args)
}

func TestBuildCourseCountQuery_NoJoins(t *testing.T) {
	sql, _, err := buildCourseCountQuery(dto.CourseListParams{Query: "algo"}).ToSql()
	require.NoError(t, err)

	// The count must run over the bare courses table so the teacher
	// association can never multiply rows.
	assert.Contains(t, sql, "SELECT COUNT(*) FROM courses c")
	assert.NotContains(t, sql, "LEFT JOIN")
	assert.NotContains(t, sql, "LIMIT")
	assert.NotContains(t, sql, "OFFSET")
}

func TestCourseOrderBy(t *testing.T) {
	assert.Equal(t, "c.id ASC", courseOrderBy(""))
	assert.Equal(t, "c.id ASC", courseOrderBy("id"))
	assert.Equal(t, "c.id ASC", courseOrderBy("bogus"))
	assert.Equal(t, "c.comment_count DESC, c.id ASC", courseOrderBy("rating_count"))
	assert.Equal(t, "c.avg_score DESC NULLS LAST, c.id ASC", courseOrderBy("avg_rating"))
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	ts := time.Date(2026, 3, 1, 18, 30, 0, 0, loc)
	assert.Equal(t, "2026-03-01T10:30:00Z", formatTimestamp(ts))
}

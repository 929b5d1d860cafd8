package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
)

func TestBuildTeacherListQuery_Defaults(t *testing.T) {
	sql, args, err := buildTeacherListQuery(dto.TeacherListParams{Page: 1, Limit: 20}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM teachers t")
	assert.Contains(t, sql, "COUNT(DISTINCT ct.course_id)")
	assert.Contains(t, sql, "ORDER BY t.id ASC")
	assert.Contains(t, sql, "LIMIT 20")
	assert.Empty(t, args)
}

func TestBuildTeacherListQuery_NameSearch(t *testing.T) {
	sql, args, err := buildTeacherListQuery(dto.TeacherListParams{
		Query: "smith", Page: 1, Limit: 20,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "t.name ILIKE $1")
	assert.Equal(t, []interface{}{"%smith%"}, args)
}

func TestBuildTeacherCountQuery_NoSubqueries(t *testing.T) {
	sql, _, err := buildTeacherCountQuery(dto.TeacherListParams{Query: "smith"}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "SELECT COUNT(*) FROM teachers t")
	assert.NotContains(t, sql, "course_teachers")
	assert.NotContains(t, sql, "LIMIT")
}

func TestTeacherOrderBy(t *testing.T) {
	assert.Equal(t, "t.id ASC", teacherOrderBy(""))
	assert.Equal(t, "t.id ASC", teacherOrderBy("unknown"))
	assert.Equal(t, "t.comment_count DESC, t.id ASC", teacherOrderBy("rating_count"))
	assert.Equal(t, "t.avg_score DESC NULLS LAST, t.id ASC", teacherOrderBy("avg_rating"))
}

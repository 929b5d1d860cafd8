package dataservice

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
	"github.com/SMU-RES/smu-course-review/internal/pkg/apperrors"
)

const fixtureSchema = `
CREATE TABLE departments (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);
CREATE TABLE teachers (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    department_id INTEGER REFERENCES departments(id),
    avg_score     REAL,
    rating_count  INTEGER NOT NULL DEFAULT 0,
    comment_count INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE courses (
    id            INTEGER PRIMARY KEY,
    course_code   TEXT NOT NULL,
    course_seq    TEXT UNIQUE,
    name          TEXT NOT NULL,
    category      TEXT NOT NULL DEFAULT '',
    credits       REAL NOT NULL DEFAULT 0,
    hours         INTEGER NOT NULL DEFAULT 0,
    department_id INTEGER REFERENCES departments(id),
    avg_score     REAL,
    rating_count  INTEGER NOT NULL DEFAULT 0,
    comment_count INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE course_teachers (
    course_id  INTEGER NOT NULL,
    teacher_id TEXT    NOT NULL,
    PRIMARY KEY (course_id, teacher_id)
);
CREATE TABLE comments (
    id         INTEGER PRIMARY KEY,
    course_id  INTEGER NOT NULL,
    parent_id  INTEGER,
    nickname   TEXT NOT NULL DEFAULT 'Anonymous',
    content    TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE TABLE teacher_comments (
    id         INTEGER PRIMARY KEY,
    teacher_id TEXT NOT NULL,
    parent_id  INTEGER,
    nickname   TEXT NOT NULL DEFAULT 'Anonymous',
    content    TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`

// newFixture writes a small snapshot file and returns a local service over it.
func newFixture(t *testing.T) *LocalService {
	t.Helper()

	path := filepath.Join(t.TempDir(), "snapshot.sqlite")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(fixtureSchema)
	require.NoError(t, err)

	stmts := []string{
		`INSERT INTO departments (id, name) VALUES
			(1, 'Computer Science'), (2, 'Mathematics')`,
		`INSERT INTO teachers (id, name, department_id, avg_score, rating_count, comment_count) VALUES
			('T001', 'Alice Zhang', 1, 4.5, 2, 1),
			('T002', 'Bob Li', 2, NULL, 0, 0)`,
		`INSERT INTO courses (id, course_code, name, category, credits, hours, department_id, avg_score, rating_count, comment_count) VALUES
			(5, 'CS101', 'Algorithms', 'core', 4, 64, 1, 4.3, 3, 2),
			(6, 'MA201', 'Calculus', 'core', 5, 80, 2, NULL, 0, 0),
			(7, 'CS102', 'Data Structures', 'core', 3, 48, 1, 3.0, 1, 0)`,
		`INSERT INTO course_teachers (course_id, teacher_id) VALUES
			(5, 'T001'), (5, 'T002'), (6, 'T002'), (7, 'T001')`,
		`INSERT INTO comments (id, course_id, parent_id, nickname, content, created_at) VALUES
			(1, 5, NULL, 'Anonymous', 'Great', '2026-03-01T10:00:00Z'),
			(2, 5, NULL, 'Anonymous', 'Hard but fair', '2026-03-02T10:00:00Z'),
			(3, 5, 1, 'Anonymous', 'Agreed', '2026-03-01T11:00:00Z')`,
		`INSERT INTO teacher_comments (id, teacher_id, parent_id, nickname, content, created_at) VALUES
			(1, 'T001', NULL, 'Anonymous', 'Very clear lectures', '2026-03-03T09:00:00Z')`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	svc := NewLocalService(path)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestLocalListCourses_Defaults(t *testing.T) {
	svc := newFixture(t)

	result, err := svc.ListCourses(context.Background(), dto.CourseListParams{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)
	require.Len(t, result.Courses, 3)

	// Identity order by default.
	assert.Equal(t, int64(5), result.Courses[0].ID)
	assert.Equal(t, int64(6), result.Courses[1].ID)
	assert.Equal(t, int64(7), result.Courses[2].ID)

	first := result.Courses[0]
	require.NotNil(t, first.TeacherNames)
	assert.Equal(t, "Alice Zhang, Bob Li", *first.TeacherNames)
	require.NotNil(t, first.DepartmentName)
	assert.Equal(t, "Computer Science", *first.DepartmentName)
	require.NotNil(t, first.AvgRating)
	assert.Equal(t, 4.3, *first.AvgRating)
	assert.Equal(t, 3, first.RatingCount)
	assert.Equal(t, 2, first.CommentCount)
}

func TestLocalListCourses_SearchByTeacherName(t *testing.T) {
	svc := newFixture(t)

	result, err := svc.ListCourses(context.Background(), dto.CourseListParams{Query: "alice"})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Total)
	require.Len(t, result.Courses, 2)
	assert.Equal(t, int64(5), result.Courses[0].ID)
	assert.Equal(t, int64(7), result.Courses[1].ID)
}

func TestLocalListCourses_NameFieldOnly(t *testing.T) {
	svc := newFixture(t)

	result, err := svc.ListCourses(context.Background(), dto.CourseListParams{
		Query: "cs10", Field: "name",
	})
	require.NoError(t, err)

	// "cs10" matches course codes but not display names, and the name field
	// restricts the search to names only.
	assert.Equal(t, int64(0), result.Total)
	assert.Empty(t, result.Courses)
}

func TestLocalListCourses_DepartmentFilter(t *testing.T) {
	svc := newFixture(t)

	dept := int64(2)
	result, err := svc.ListCourses(context.Background(), dto.CourseListParams{Department: &dept})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Courses, 1)
	assert.Equal(t, "Calculus", result.Courses[0].Name)
}

func TestLocalListCourses_SortByAvgRating(t *testing.T) {
	svc := newFixture(t)

	result, err := svc.ListCourses(context.Background(), dto.CourseListParams{Sort: "avg_rating"})
	require.NoError(t, err)

	require.Len(t, result.Courses, 3)
	assert.Equal(t, int64(5), result.Courses[0].ID)
	assert.Equal(t, int64(7), result.Courses[1].ID)
	// The unrated course sorts last.
	assert.Equal(t, int64(6), result.Courses[2].ID)
	assert.Nil(t, result.Courses[2].AvgRating)
}

func TestLocalListCourses_PaginationClamped(t *testing.T) {
	svc := newFixture(t)

	result, err := svc.ListCourses(context.Background(), dto.CourseListParams{Page: -3, Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 50, result.Limit)

	result, err = svc.ListCourses(context.Background(), dto.CourseListParams{Page: 1, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Limit)
	require.Len(t, result.Courses, 1)

	result, err = svc.ListCourses(context.Background(), dto.CourseListParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	require.Len(t, result.Courses, 1)
	assert.Equal(t, int64(7), result.Courses[0].ID)
}

func TestLocalGetCourseDetail(t *testing.T) {
	svc := newFixture(t)

	detail, err := svc.GetCourseDetail(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, "Algorithms", detail.Course.Name)
	assert.Equal(t, "CS101", detail.Course.CourseCode)

	require.Len(t, detail.Teachers, 2)
	assert.Equal(t, "Alice Zhang", detail.Teachers[0].Name)
	assert.Equal(t, "Bob Li", detail.Teachers[1].Name)

	assert.Equal(t, 3, detail.Rating.Count)
	assert.Equal(t, 4.3, detail.Rating.Average)

	// Newest top-level comment first, replies attached in ascending order.
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "Hard but fair", detail.Comments[0].Content)
	assert.NotNil(t, detail.Comments[0].Replies)
	assert.Empty(t, detail.Comments[0].Replies)
	assert.Equal(t, "Great", detail.Comments[1].Content)
	require.Len(t, detail.Comments[1].Replies, 1)
	assert.Equal(t, "Agreed", detail.Comments[1].Replies[0].Content)
	assert.Equal(t, "2026-03-01T11:00:00Z", detail.Comments[1].Replies[0].CreatedAt)
}

func TestLocalGetCourseDetail_NotFound(t *testing.T) {
	svc := newFixture(t)

	_, err := svc.GetCourseDetail(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestLocalListTeachers(t *testing.T) {
	svc := newFixture(t)

	result, err := svc.ListTeachers(context.Background(), dto.TeacherListParams{})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Total)
	require.Len(t, result.Teachers, 2)

	alice := result.Teachers[0]
	assert.Equal(t, "T001", alice.ID)
	assert.Equal(t, 2, alice.CourseCount)
	require.NotNil(t, alice.AvgRating)
	assert.Equal(t, 4.5, *alice.AvgRating)

	bob := result.Teachers[1]
	assert.Equal(t, 1, bob.CourseCount)
	assert.Nil(t, bob.AvgRating)
}

func TestLocalGetTeacherDetail(t *testing.T) {
	svc := newFixture(t)

	detail, err := svc.GetTeacherDetail(context.Background(), "T001")
	require.NoError(t, err)

	assert.Equal(t, "Alice Zhang", detail.Teacher.Name)
	assert.Equal(t, 2, detail.Rating.Count)
	assert.Equal(t, 4.5, detail.Rating.Average)

	// Courses ordered by name.
	require.Len(t, detail.Courses, 2)
	assert.Equal(t, "Algorithms", detail.Courses[0].Name)
	assert.Equal(t, "Data Structures", detail.Courses[1].Name)

	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "Very clear lectures", detail.Comments[0].Content)
}

func TestLocalGetTeacherDetail_NotFound(t *testing.T) {
	svc := newFixture(t)

	_, err := svc.GetTeacherDetail(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrTeacherNotFound)
}

func TestLocalListDepartments(t *testing.T) {
	svc := newFixture(t)

	result, err := svc.ListDepartments(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Departments, 2)
	assert.Equal(t, "Computer Science", result.Departments[0].Name)
	assert.Equal(t, 2, result.Departments[0].CourseCount)
	assert.Equal(t, 1, result.Departments[1].CourseCount)
}

func TestLocalOpenFailureIsTerminal(t *testing.T) {
	svc := NewLocalService(filepath.Join(t.TempDir(), "missing", "db.sqlite"))

	_, err1 := svc.ListDepartments(context.Background())
	assert.ErrorIs(t, err1, apperrors.ErrSnapshotLoadFailed)

	// Later calls get the same cached failure without reopening.
	_, err2 := svc.GetCourseDetail(context.Background(), 1)
	assert.ErrorIs(t, err2, apperrors.ErrSnapshotLoadFailed)
	assert.Equal(t, err1, err2)
}

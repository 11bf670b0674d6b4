package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/code-explainer-api/internal/models"
	"github.com/yukikurage/code-explainer-api/internal/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func strPtr(s string) *string { return &s }

type submissionFixture struct {
	repo  SubmissionRepository
	alice *models.User
	bob   *models.User
}

func setupSubmissionFixture(t *testing.T) submissionFixture {
	t.Helper()
	db := setupTestDB(t)

	users := NewUserRepository(db)
	alice := &models.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash"}
	bob := &models.User{Username: "bob", Email: "b@x.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(alice))
	require.NoError(t, users.Create(bob))

	return submissionFixture{repo: NewSubmissionRepository(db), alice: alice, bob: bob}
}

func (f submissionFixture) add(t *testing.T, owner *models.User, heading *string, code string, at time.Time) *models.CodeSubmission {
	t.Helper()
	s := &models.CodeSubmission{
		UserID:         owner.ID,
		Heading:        heading,
		CodeText:       code,
		AnalysisResult: &models.AnalysisResult{Heading: "h", Summary: "s"},
		CreatedAt:      at,
	}
	require.NoError(t, f.repo.Create(s))
	return s
}

func TestGormSubmissionRepository_ListByOwner(t *testing.T) {
	f := setupSubmissionFixture(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	oldest := f.add(t, f.alice, strPtr("First"), "print(1)", base)
	newest := f.add(t, f.alice, strPtr("Third"), "print(3)", base.Add(2*time.Minute))
	middle := f.add(t, f.alice, nil, "print(2)", base.Add(time.Minute))
	f.add(t, f.bob, strPtr("Bob's"), "print('bob')", base.Add(time.Hour))

	got, err := f.repo.ListByOwner(f.alice.ID, nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []uint64{newest.ID, middle.ID, oldest.ID}, []uint64{got[0].ID, got[1].ID, got[2].ID})
	for _, s := range got {
		assert.Equal(t, f.alice.ID, s.UserID)
	}
	require.NotNil(t, got[0].AnalysisResult)
	assert.Equal(t, "s", got[0].AnalysisResult.Summary)

	page, err := f.repo.ListByOwner(f.alice.ID, &utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, oldest.ID, page[0].ID)
}

func TestGormSubmissionRepository_ListByOwner_Empty(t *testing.T) {
	f := setupSubmissionFixture(t)

	got, err := f.repo.ListByOwner(f.alice.ID, nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGormSubmissionRepository_FindByIDAndOwner(t *testing.T) {
	f := setupSubmissionFixture(t)
	s := f.add(t, f.alice, strPtr("Heading"), "code", time.Now())

	got, err := f.repo.FindByIDAndOwner(s.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "code", got.CodeText)
	require.NotNil(t, got.Heading)
	assert.Equal(t, "Heading", *got.Heading)

	_, err = f.repo.FindByIDAndOwner(s.ID, f.bob.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = f.repo.FindByIDAndOwner(s.ID+100, f.alice.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestGormSubmissionRepository_SearchByOwner(t *testing.T) {
	f := setupSubmissionFixture(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	byCode := f.add(t, f.alice, strPtr("Loop"), "for i in range(10): PRINT(i)", base)
	byHeading := f.add(t, f.alice, strPtr("Prints a greeting"), "echo hi", base.Add(time.Minute))
	f.add(t, f.alice, nil, "x = 1", base.Add(2*time.Minute))
	f.add(t, f.bob, strPtr("print everything"), "print(all)", base.Add(3*time.Minute))
	literal := f.add(t, f.alice, nil, "discount = '50%_off'", base.Add(4*time.Minute))

	got, err := f.repo.SearchByOwner(f.alice.ID, "print")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, byHeading.ID, got[0].ID)
	assert.Equal(t, byCode.ID, got[1].ID)

	got, err = f.repo.SearchByOwner(f.alice.ID, "50%_")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, literal.ID, got[0].ID)

	got, err = f.repo.SearchByOwner(f.alice.ID, "%")
	require.NoError(t, err)
	require.Len(t, got, 1, "%% must match literally, not everything")

	got, err = f.repo.SearchByOwner(f.alice.ID, "random test hjbswdhjehjfdhw")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGormSubmissionRepository_DeleteByIDAndOwner(t *testing.T) {
	f := setupSubmissionFixture(t)
	s := f.add(t, f.alice, nil, "code", time.Now())

	n, err := f.repo.DeleteByIDAndOwner(s.ID, f.bob.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = f.repo.DeleteByIDAndOwner(s.ID, f.alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = f.repo.DeleteByIDAndOwner(s.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func newMockRepo(t *testing.T) (SubmissionRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewSubmissionRepository(db), mock
}

func TestGormSubmissionRepository_DeleteIsSingleOwnerScopedStatement(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "code_submissions" WHERE id = $1 AND user_id = $2`)).
		WithArgs(uint64(7), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.DeleteByIDAndOwner(7, 1)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSubmissionRepository_FindFiltersByOwner(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "user_id", "heading", "code_text", "ai_result", "created_at"}).
		AddRow(7, 1, "Adds numbers", "a + b", `{"heading":"Adds numbers","summary":"sum"}`, created)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "code_submissions" WHERE id = $1 AND user_id = $2`)).
		WillReturnRows(rows)

	got, err := repo.FindByIDAndOwner(7, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 7, got.ID)
	require.NotNil(t, got.AnalysisResult)
	assert.Equal(t, "sum", got.AnalysisResult.Summary)
	assert.True(t, created.Equal(got.CreatedAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSubmissionRepository_SearchByOwner_EmptyAndNonASCII(t *testing.T) {
	f := setupSubmissionFixture(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	accented := f.add(t, f.alice, strPtr("Cours à l'école"), "print('école')", base)
	f.add(t, f.alice, nil, "x = 1", base.Add(time.Minute))
	f.add(t, f.bob, nil, "y = 2", base.Add(2*time.Minute))

	all, err := f.repo.SearchByOwner(f.alice.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Non-ASCII text matches when written the same way; SQLite folds ASCII only.
	got, err := f.repo.SearchByOwner(f.alice.ID, "école")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, accented.ID, got[0].ID)

	got, err = f.repo.SearchByOwner(f.alice.ID, "COURS À")
	require.NoError(t, err)
	assert.Len(t, got, 1, "ASCII letters still fold around non-ASCII ones")
}

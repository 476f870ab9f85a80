package repository

import (
	"context"
	"regexp"
	"testing"

	"academy/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_InsertEvent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "user_activities"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.InsertEvent(ctx, &models.UserActivity{
		UserID:       1,
		ActivityType: "lesson_completed",
		FeatureArea:  models.FeatureCourses,
		ItemID:       "intro-to-agents",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepository_IncrementStat_Upserts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "user_stats" .* ON CONFLICT .* DO UPDATE SET`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.IncrementStat(ctx, 1, "lesson_completed", models.FeatureCourses)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepository_StatsByUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "user_id", "activity_type", "feature_area", "count"}).
		AddRow(1, 5, "lesson_completed", models.FeatureCourses, 12).
		AddRow(2, 5, "prompt_used", models.FeaturePrompts, 4)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_stats" WHERE user_id = $1 ORDER BY feature_area ASC, activity_type ASC`)).
		WithArgs(5).
		WillReturnRows(rows)

	stats, err := repo.StatsByUser(ctx, 5)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 12, stats[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepository_RecentByUser_ClampsLimit(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_activities" WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`)).
		WithArgs(5, 100).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.RecentByUser(ctx, 5, 1000)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MIA1kl/threads-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbSeq++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Follow{},
		&models.Thread{},
		&models.ThreadMention{},
		&models.Comment{},
		&models.Like{},
		&models.CommentLike{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

var (
	dbSeq   int
	userSeq int
)

func createUser(t *testing.T, db *gorm.DB, username string, isPrivate bool) models.User {
	t.Helper()
	userSeq++
	user := models.User{
		Username:  username,
		Email:     fmt.Sprintf("%s%d@example.com", username, userSeq),
		Password:  "hashed",
		Name:      username,
		IsPrivate: isPrivate,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createThread(t *testing.T, db *gorm.DB, svc *ContentService, authorID uint, content string) *models.Thread {
	t.Helper()
	thread, err := svc.CreateThread(context.Background(), authorID, content, nil, nil)
	require.NoError(t, err)
	return thread
}

package service

import (
	"testing"

	"quill/internal/models"
	"quill/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func newTestAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewAuthService(repository.NewUserRepository(db)), db
}

func newTestBlogService(t *testing.T) (*BlogService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewBlogService(repository.NewPostRepository(db)), db
}

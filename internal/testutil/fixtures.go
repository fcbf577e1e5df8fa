package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"daybook/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:           email,
		Password:        string(hash),
		IsActive:        true,
		Theme:           "system",
		DefaultMood:     models.MoodNeutral,
		DefaultCategory: models.CategoryPersonal,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestEntry creates an entry with derived fields matching its content.
func CreateTestEntry(t *testing.T, db *gorm.DB, userID string) *models.Entry {
	t.Helper()
	return CreateTestEntryOn(t, db, userID, time.Now())
}

// CreateTestEntryOn creates an entry dated to the given time.
func CreateTestEntryOn(t *testing.T, db *gorm.DB, userID string, entryDate time.Time) *models.Entry {
	t.Helper()

	n := nextID()
	entry := &models.Entry{
		UserID:      userID,
		Title:       fmt.Sprintf("Test Entry %d", n),
		Content:     "just a quiet ordinary day",
		Mood:        models.MoodNeutral,
		Category:    models.CategoryPersonal,
		WordCount:   5,
		ReadingTime: 1,
		EntryDate:   entryDate,
		IsPrivate:   true,
		Version:     1,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}
	return entry
}

// CreateTestEntryWith creates an entry with the given mood, category, and word count.
func CreateTestEntryWith(t *testing.T, db *gorm.DB, userID string, mood models.Mood, category models.EntryCategory, wordCount int) *models.Entry {
	t.Helper()

	n := nextID()
	entry := &models.Entry{
		UserID:      userID,
		Title:       fmt.Sprintf("Test Entry %d", n),
		Content:     "placeholder content",
		Mood:        mood,
		Category:    category,
		WordCount:   wordCount,
		ReadingTime: (wordCount + 199) / 200,
		EntryDate:   time.Now(),
		IsPrivate:   true,
		Version:     1,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}
	return entry
}

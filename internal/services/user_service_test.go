package services

import (
	"testing"

	"daybook/internal/models"
	"daybook/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Alice@Example.com", "password123", "Alice")
		testutil.AssertNoError(t, err)

		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %q", user.Email)
		}
		if user.Password == "password123" {
			t.Error("expected password to be hashed")
		}
		if !user.IsActive {
			t.Error("expected new users to be active")
		}
		if user.Theme != "system" || user.DefaultMood != models.MoodNeutral || user.DefaultCategory != models.CategoryPersonal {
			t.Errorf("unexpected preference defaults: %s %s %s", user.Theme, user.DefaultMood, user.DefaultCategory)
		}
	})

	t.Run("duplicate_email_case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("bob@example.com", "password123", "Bob")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("BOB@example.com", "password456", "Bobby")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "password123", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("carol@example.com", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("short_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("dave@example.com", "short", "Dave")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAttemptLogin(t *testing.T) {
	t.Run("valid_credentials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created, err := svc.CreateUser("erin@example.com", "password123", "Erin")
		testutil.AssertNoError(t, err)

		user, err := svc.AttemptLogin("erin@example.com", "password123")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %s, got %s", created.ID, user.ID)
		}
	})

	t.Run("unknown_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.AttemptLogin("nobody@example.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("frank@example.com", "password123", "Frank")
		testutil.AssertNoError(t, err)

		_, err = svc.AttemptLogin("frank@example.com", "wrongpass123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("deactivated_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("grace@example.com", "password123", "Grace")
		testutil.AssertNoError(t, err)

		if err := db.Model(user).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate user: %v", err)
		}

		_, err = svc.AttemptLogin("grace@example.com", "password123")
		testutil.AssertAppError(t, err, "ACCOUNT_DEACTIVATED")
	})
}

func TestUpdatePreferences(t *testing.T) {
	t.Run("valid_changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		theme := "dark"
		mood := models.MoodGrateful
		_, err := svc.UpdatePreferences(user.ID, PreferenceUpdate{Theme: &theme, DefaultMood: &mood})
		testutil.AssertNoError(t, err)

		var reloaded models.User
		if err := db.First(&reloaded, "id = ?", user.ID).Error; err != nil {
			t.Fatalf("failed to reload user: %v", err)
		}
		if reloaded.Theme != "dark" {
			t.Errorf("expected dark theme, got %q", reloaded.Theme)
		}
		if reloaded.DefaultMood != models.MoodGrateful {
			t.Errorf("expected grateful default mood, got %q", reloaded.DefaultMood)
		}
	})

	t.Run("invalid_theme", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		theme := "sepia"
		_, err := svc.UpdatePreferences(user.ID, PreferenceUpdate{Theme: &theme})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_default_mood", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		mood := models.Mood("giddy")
		_, err := svc.UpdatePreferences(user.ID, PreferenceUpdate{DefaultMood: &mood})
		testutil.AssertAppError(t, err, "INVALID_MOOD")
	})
}

func TestRefreshTokenHash(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, "abc123"))

	hash, err := svc.GetRefreshTokenHash(user.ID)
	testutil.AssertNoError(t, err)
	if hash != "abc123" {
		t.Errorf("expected stored hash, got %q", hash)
	}
}

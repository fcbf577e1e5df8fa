package models

import "time"

// User represents a registered journal owner.
type User struct {
	Base
	Email            string `gorm:"uniqueIndex;not null" json:"email"`
	Password         string `gorm:"not null" json:"-"`
	Name             string `json:"name"`
	IsActive         bool   `gorm:"default:true" json:"is_active"`
	RefreshTokenHash string `gorm:"size:64" json:"-"`

	// Preferences
	Theme           string        `gorm:"default:system" json:"theme"`
	DefaultMood     Mood          `gorm:"default:neutral" json:"default_mood"`
	DefaultCategory EntryCategory `gorm:"default:personal" json:"default_category"`

	// Derived stats, maintained by the stats recomputation hook.
	// Never written directly by request handlers.
	TotalEntries  int64      `gorm:"default:0" json:"total_entries"`
	TotalWords    int64      `gorm:"default:0" json:"total_words"`
	CurrentStreak int        `gorm:"default:0" json:"current_streak"`
	LastEntryDate *time.Time `json:"last_entry_date"`

	Entries []Entry `gorm:"foreignKey:UserID" json:"entries,omitempty"`
}

package models

import "time"

// Mood classifies the emotional tone of an entry.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodAnxious  Mood = "anxious"
	MoodExcited  Mood = "excited"
	MoodCalm     Mood = "calm"
	MoodAngry    Mood = "angry"
	MoodGrateful Mood = "grateful"
	MoodNeutral  Mood = "neutral"
)

// Moods lists every valid mood value.
var Moods = []Mood{
	MoodHappy, MoodSad, MoodAnxious, MoodExcited,
	MoodCalm, MoodAngry, MoodGrateful, MoodNeutral,
}

// IsValid reports whether m is one of the eight defined moods.
func (m Mood) IsValid() bool {
	for _, v := range Moods {
		if m == v {
			return true
		}
	}
	return false
}

// EntryCategory classifies the subject of an entry.
type EntryCategory string

const (
	CategoryPersonal      EntryCategory = "personal"
	CategoryWork          EntryCategory = "work"
	CategoryTravel        EntryCategory = "travel"
	CategoryHealth        EntryCategory = "health"
	CategoryRelationships EntryCategory = "relationships"
	CategoryGoals         EntryCategory = "goals"
	CategoryGratitude     EntryCategory = "gratitude"
	CategoryOther         EntryCategory = "other"
)

// EntryCategories lists every valid category value.
var EntryCategories = []EntryCategory{
	CategoryPersonal, CategoryWork, CategoryTravel, CategoryHealth,
	CategoryRelationships, CategoryGoals, CategoryGratitude, CategoryOther,
}

// IsValid reports whether c is one of the eight defined categories.
func (c EntryCategory) IsValid() bool {
	for _, v := range EntryCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Entry represents a single dated journal entry owned by a user.
// WordCount and ReadingTime are derived from Content before every save
// and never trusted from the caller.
type Entry struct {
	Base
	UserID   string        `gorm:"type:uuid;not null;index" json:"user_id"`
	Title    string        `gorm:"size:200;not null" json:"title"`
	Content  string        `gorm:"type:text;not null" json:"content"`
	Mood     Mood          `gorm:"not null;index" json:"mood"`
	Category EntryCategory `gorm:"not null;index" json:"category"`
	Tags     []string      `gorm:"serializer:json" json:"tags"`

	WordCount   int `gorm:"default:0" json:"word_count"`
	ReadingTime int `gorm:"default:0" json:"reading_time"`

	EntryDate  time.Time `gorm:"not null;index" json:"entry_date"`
	IsPrivate  bool      `gorm:"default:true" json:"is_private"`
	IsFavorite bool      `gorm:"default:false" json:"is_favorite"`

	// Optional metadata, stored as given.
	Location  string   `json:"location,omitempty"`
	Weather   string   `json:"weather,omitempty"`
	Sentiment *float64 `json:"sentiment,omitempty"`

	// Optimistic version counter, incremented on every update.
	Version int `gorm:"default:1" json:"version"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

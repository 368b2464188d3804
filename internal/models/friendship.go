package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Friendship is an undirected relationship, created when a request is
// accepted. PairKey is identical for (A,B) and (B,A).
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	User1ID   uint      `gorm:"not null;index" json:"user1"`
	User2ID   uint      `gorm:"not null;index" json:"user2"`
	PairKey   string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"-"`
	CreatedAt time.Time `json:"created_at"`

	User1 User `gorm:"foreignKey:User1ID;references:ID" json:"-"`
	User2 User `gorm:"foreignKey:User2ID;references:ID" json:"-"`
}

func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	f.PairKey = PairKey(f.User1ID, f.User2ID)
	return nil
}

// PairKey orders the ids so both directions map to the same key.
func PairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

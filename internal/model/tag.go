package model

// Tag labels recipes. Names are unique per owner; the composite index is the
// arbiter for concurrent get-or-create of the same name.
type Tag struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"-" gorm:"not null;uniqueIndex:idx_tags_user_name,priority:1"`
	Name   string `json:"name" gorm:"size:255;not null;uniqueIndex:idx_tags_user_name,priority:2"`
}

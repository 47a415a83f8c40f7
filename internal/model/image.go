package model

import "time"

// RecipeImage points at a stored blob attached to a recipe. The path gets a
// fresh random name on every write, so an updated image never reuses a URL.
type RecipeImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RecipeID  uint      `json:"-" gorm:"not null;index"`
	ImagePath string    `json:"-" gorm:"size:512;not null"`
	FileSize  int64     `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// IngredientImage is the same shape scoped to an ingredient.
type IngredientImage struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	IngredientID uint      `json:"-" gorm:"not null;index"`
	ImagePath    string    `json:"-" gorm:"size:512;not null"`
	FileSize     int64     `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

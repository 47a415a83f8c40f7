package model

// Ingredient is a user-scoped recipe component. Same uniqueness and lazy
// creation rules as Tag, plus attached images.
type Ingredient struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"-" gorm:"not null;uniqueIndex:idx_ingredients_user_name,priority:1"`
	Name   string `json:"name" gorm:"size:255;not null;uniqueIndex:idx_ingredients_user_name,priority:2"`

	// Relations
	Images []IngredientImage `json:"images,omitempty" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

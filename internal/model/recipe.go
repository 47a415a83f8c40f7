package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is the aggregate root of the domain: scalar fields plus
// many-to-many tag/ingredient relations and attached images.
// UserID is set once at creation and never reassigned.
type Recipe struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"-" gorm:"not null;index"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	TimeMinutes int             `json:"time_minutes" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Link        string          `json:"link" gorm:"size:255"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	Tags        []Tag         `json:"tags,omitempty" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient  `json:"ingredients,omitempty" gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
	Images      []RecipeImage `json:"images,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

package models

// Category is a top-level classification shared by all users.
type Category struct {
	Base
	Name string `gorm:"not null;uniqueIndex" json:"name"`

	SubCategories []SubCategory `gorm:"foreignKey:CategoryID" json:"subCategories,omitempty"`
}

// SubCategory refines a Category. Its parent must exist.
type SubCategory struct {
	Base
	Name       string `gorm:"not null;index" json:"name"`
	CategoryID uint   `gorm:"not null;index" json:"categoryId"`
}

// TableName keeps the historical single-word table name.
func (SubCategory) TableName() string {
	return "subcategories"
}

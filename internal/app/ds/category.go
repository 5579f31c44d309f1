package ds

// Category is the top level of the catalog tree.
type Category struct {
	ID            uint          `gorm:"primaryKey"`
	Name          string        `gorm:"type:varchar(100);not null"`
	ImageFilename *string       `gorm:"type:varchar(100)"`
	Subcategories []Subcategory `gorm:"constraint:OnDelete:CASCADE"`
}

type Subcategory struct {
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"type:varchar(100);not null"`
	CategoryID uint      `gorm:"not null;index"`
	Services   []Service `gorm:"constraint:OnDelete:CASCADE"`
}

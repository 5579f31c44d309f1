package ds

const DefaultVariantUnit = "per service"

type Service struct {
	ID            uint      `gorm:"primaryKey"`
	Name          string    `gorm:"type:varchar(200);not null"`
	Available     bool      `gorm:"not null"`
	Description   string    `gorm:"type:text"`
	SubcategoryID uint      `gorm:"not null;index"`
	ImageFilename *string   `gorm:"type:varchar(100)"`
	Variants      []Variant `gorm:"constraint:OnDelete:CASCADE"`
}

// Variant is a priced option of a service, e.g. "1 Bedroom" or "100g".
// Price is kept in the smallest currency unit.
type Variant struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(100);not null"`
	Price     int    `gorm:"not null;default:0"`
	Unit      string `gorm:"type:varchar(50);not null;default:'per service'"`
	Available bool   `gorm:"not null"`
	ServiceID uint   `gorm:"not null;index"`
}

package ds

const DefaultClosedMessage = "We're currently closed. Please come back during our business hours."

// ShopStatusID is the primary key of the only ShopStatus row.
const ShopStatusID uint = 1

// ShopStatus is a single-row table, always stored under ShopStatusID.
type ShopStatus struct {
	ID      uint   `gorm:"primaryKey"`
	IsOpen  bool   `gorm:"not null"`
	Message string `gorm:"type:varchar(200);not null"`
}

func (ShopStatus) TableName() string {
	return "shop_status"
}

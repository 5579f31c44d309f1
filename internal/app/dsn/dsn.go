package dsn

import (
	"fmt"

	"shopfront/internal/app/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// FromConfig builds a connection string for the configured driver.
func FromConfig(c config.DBConfig) string {
	switch c.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.User, c.Password, c.Host, c.Port, c.Name)
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone)
	}
}

// Dialector returns the gorm dialector matching the configured driver.
func Dialector(c config.DBConfig) (gorm.Dialector, error) {
	switch c.Driver {
	case "", "postgres":
		return postgres.Open(FromConfig(c)), nil
	case "mysql":
		return mysql.Open(FromConfig(c)), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", c.Driver)
	}
}

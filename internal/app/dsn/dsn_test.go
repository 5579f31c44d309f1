package dsn

import (
	"testing"

	"shopfront/internal/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	c := config.DBConfig{
		Driver:   "postgres",
		Host:     "db",
		Port:     5432,
		User:     "shop",
		Password: "pw",
		Name:     "catalog",
		SSLMode:  "disable",
		TimeZone: "Asia/Kolkata",
	}
	assert.Equal(t, "host=db user=shop password=pw dbname=catalog port=5432 sslmode=disable TimeZone=Asia/Kolkata", FromConfig(c))

	c.Driver = "mysql"
	c.Port = 3306
	assert.Equal(t, "shop:pw@tcp(db:3306)/catalog?charset=utf8mb4&parseTime=True&loc=Local", FromConfig(c))
}

func TestDialector(t *testing.T) {
	d, err := Dialector(config.DBConfig{Driver: "mysql"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Dialector(config.DBConfig{})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector(config.DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

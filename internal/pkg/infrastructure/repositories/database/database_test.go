package database

import (
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestSQLiteConnector(t *testing.T) {
	is := is.New(t)

	db, _, err := NewSQLiteConnector(zerolog.Logger{})()
	is.NoErr(err)

	var one int
	is.NoErr(db.Raw("SELECT 1").Scan(&one).Error)
	is.Equal(one, 1)
}

func TestConnectorConfigEnabled(t *testing.T) {
	is := is.New(t)

	is.True(!ConnectorConfig{}.Enabled())
	is.True(ConnectorConfig{Host: "localhost"}.Enabled())
}

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DSN(t *testing.T) {
	cfg := Config{
		Host:     "db",
		Port:     "5432",
		User:     "likes",
		Password: "secret",
		DBName:   "likesdb",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=likes password=secret dbname=likesdb sslmode=disable", cfg.DSN())
}

func TestGormOptions_TranslatesErrors(t *testing.T) {
	opts := GormOptions()
	assert.True(t, opts.TranslateError)
	assert.NotNil(t, opts.Logger)
}

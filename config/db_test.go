package config

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestOpenDB_TranslatesDriverErrors(t *testing.T) {
	cfg := &Config{}
	cfg.Database.URL = "host=127.0.0.1 port=1 user=test dbname=test sslmode=disable connect_timeout=1"
	cfg.Database.MaxIdleConns = 1
	cfg.Database.MaxOpenConns = 1

	db, err := OpenDB(cfg)
	assert.Equal(t, nil, err)
	defer CloseDB(db)

	assert.Equal(t, true, db.Config.TranslateError)
}

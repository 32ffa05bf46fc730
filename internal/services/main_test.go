package services

import (
	"testing"

	"github.com/josetomecore/P6-Quiz/internal/testdb"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	return testdb.New(t)
}

package migration

import (
	"testing"

	"github.com/rentwheels/rental-admin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRunAndSeedDemo(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Run(db))
	require.NoError(t, Run(db))

	n, err := SeedDemo(db, "demo-brand")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// 두 번째 실행은 아무것도 넣지 않는다
	n, err = SeedDemo(db, "demo-brand")
	require.NoError(t, err)
	assert.Zero(t, n)

	var entries []domain.ContentEntry
	require.NoError(t, db.Order("order_num").Find(&entries).Error)
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].OrderNum)
	assert.Equal(t, domain.EntryKindBrand, entries[2].Kind)
}

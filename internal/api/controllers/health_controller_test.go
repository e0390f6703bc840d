package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newPingDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestHealthController_Check(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	db, mock := newPingDB(t)
	mock.ExpectPing()

	r := gin.New()
	r.GET("/health", NewHealthController(db, rdb).Check)

	w, resp := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "ok", data["database"])
	assert.Equal(t, "ok", data["redis"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthController_DatabaseDown(t *testing.T) {
	db, mock := newPingDB(t)
	mock.ExpectPing().WillReturnError(assert.AnError)

	r := gin.New()
	r.GET("/health", NewHealthController(db, nil).Check)

	w, resp := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "degraded", data["status"])
	assert.NotEqual(t, "ok", data["database"])
	_, hasRedis := data["redis"]
	assert.False(t, hasRedis)
}

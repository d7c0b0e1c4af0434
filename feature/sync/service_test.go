package sync

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"fleet-console/feature/sync/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestHealth(t *testing.T) {
	svc, db := newTestService(t)

	status, err := svc.Health(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "ok", status)

	// A lost store connection degrades the probe.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	status, err = svc.Health(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "degraded", status)
}

func TestSweepStaleAgents(t *testing.T) {
	svc, db := newTestService(t)
	now := time.Now().UTC()

	require.NoError(t, db.Create(&models.Agent{
		Name: "fresh", Dept: "ops", Status: models.AgentStatusRunning, LastRun: now,
	}).Error)
	require.NoError(t, db.Create(&models.Agent{
		Name: "stale", Dept: "ops", Status: models.AgentStatusRunning, LastRun: now.Add(-time.Hour),
	}).Error)
	require.NoError(t, db.Create(&models.Agent{
		Name: "already-unknown", Dept: "ops", Status: models.AgentStatusUnknown, LastRun: now.Add(-time.Hour),
	}).Error)

	n, err := svc.SweepStaleAgents(context.Background(), 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var stale models.Agent
	require.NoError(t, db.Where("name = ?", "stale").First(&stale).Error)
	assert.Equal(t, models.AgentStatusUnknown, stale.Status)

	var fresh models.Agent
	require.NoError(t, db.Where("name = ?", "fresh").First(&fresh).Error)
	assert.Equal(t, models.AgentStatusRunning, fresh.Status)
}

func TestProcessBatch_CancelledContext(t *testing.T) {
	svc, db := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := svc.ProcessBatch(ctx, &SyncRequest{
		Agents: []AgentPayload{{Name: "scout-1", Dept: "sales"}},
	})
	assert.Error(t, err)
	assert.Nil(t, result)

	var count int64
	db.Model(&models.Agent{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

// TestProcessBatch_InfrastructureFailure simulates the store dropping
// mid-batch after the agent category already applied. The whole
// transaction must roll back and the call must fail as a unit.
func TestProcessBatch_InfrastructureFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	// Agent upsert: lookup finds nothing, insert succeeds.
	mock.ExpectQuery("SELECT \\* FROM `agents`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `agents`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	// Connection dies while resolving the execution's agent.
	mock.ExpectQuery("SELECT \\* FROM `agents`").
		WillReturnError(driver.ErrBadConn)
	mock.ExpectRollback()

	svc := NewService(db, nil, "", zap.NewNop(), Config{})

	started := time.Now().UTC()
	result, err := svc.ProcessBatch(context.Background(), &SyncRequest{
		Agents: []AgentPayload{{Name: "scout-1", Dept: "sales", Status: models.AgentStatusRunning}},
		Executions: []ExecutionPayload{
			{AgentName: "scout-1", StartedAt: &started, Status: models.ExecutionStatusSuccess},
		},
	})

	assert.Error(t, err)
	assert.Nil(t, result, "no partial synced block on infrastructure failure")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsInfraError(t *testing.T) {
	assert.True(t, isInfraError(driver.ErrBadConn))
	assert.True(t, isInfraError(context.DeadlineExceeded))
	assert.True(t, isInfraError(gorm.ErrInvalidTransaction))
	assert.False(t, isInfraError(gorm.ErrDuplicatedKey))
	assert.False(t, isInfraError(assert.AnError))
}

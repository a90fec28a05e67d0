package badger

import (
	"errors"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/vedam-app/vedam/internal/common"
	"github.com/vedam-app/vedam/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db       *BadgerDB
	chunks   interfaces.ChunkStorage
	subjects interfaces.SubjectStorage
	gc       *cron.Cron
	logger   arbor.ILogger
}

// NewManager creates a new Badger storage manager and schedules value-log GC
// per the configured cron expression.
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	chunks := NewChunkStorage(db, logger)

	manager := &Manager{
		db:       db,
		chunks:   chunks,
		subjects: NewSubjectStorage(db, chunks, logger),
		logger:   logger,
	}

	if config.GCSchedule != "" {
		manager.gc = cron.New()
		if _, err := manager.gc.AddFunc(config.GCSchedule, manager.runValueLogGC); err != nil {
			db.Close()
			return nil, err
		}
		manager.gc.Start()
		logger.Debug().Str("schedule", config.GCSchedule).Msg("Badger value-log GC scheduled")
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// ChunkStorage returns the Chunk storage interface
func (m *Manager) ChunkStorage() interfaces.ChunkStorage {
	return m.chunks
}

// SubjectStorage returns the Subject storage interface
func (m *Manager) SubjectStorage() interfaces.SubjectStorage {
	return m.subjects
}

// Close stops the GC schedule and closes the database connection
func (m *Manager) Close() error {
	if m.gc != nil {
		m.gc.Stop()
	}
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// runValueLogGC reclaims value-log space. ErrNoRewrite is the normal
// nothing-to-do result and is not logged as a failure.
func (m *Manager) runValueLogGC() {
	err := m.db.Store().Badger().RunValueLogGC(0.5)
	if err != nil && !errors.Is(err, badgerdb.ErrNoRewrite) {
		m.logger.Warn().Err(err).Msg("Badger value-log GC failed")
	}
}

package postgres

import (
	"context"

	"ucode/ucode_go_task_service/config"
	"ucode/ucode_go_task_service/pkg/logger"
	psqlpool "ucode/ucode_go_task_service/pool"
	"ucode/ucode_go_task_service/storage"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
)

type Store struct {
	db      *psqlpool.Pool
	log     logger.LoggerI
	cfg     config.Config
	group   storage.GroupRepoI
	user    storage.UserRepoI
	project storage.ProjectRepoI
	task    storage.TaskRepoI
	step    storage.StepRepoI
}

func NewPostgres(ctx context.Context, cfg config.Config, log logger.LoggerI) (storage.StorageI, error) {
	pool, err := psqlpool.New(ctx, cfg.PostgresURL(), cfg.PostgresMaxConnections)
	if err != nil {
		return nil, errors.Wrap(err, "psqlpool.New")
	}

	return newStore(pool, log, cfg), nil
}

// newStore builds every repo up front, the getters are then read-only and
// safe to call from concurrent requests.
func newStore(db *psqlpool.Pool, log logger.LoggerI, cfg config.Config) *Store {
	return &Store{
		db:      db,
		log:     log,
		cfg:     cfg,
		group:   NewGroupRepo(db, log),
		user:    NewUserRepo(db, log),
		project: NewProjectRepo(db, log),
		task:    NewTaskRepo(db, log),
		step:    NewStepRepo(db, log),
	}
}

// Migrate brings the schema up to the latest version in cfg.MigrationsPath.
func Migrate(cfg config.Config) error {
	m, err := migrate.New("file://"+cfg.MigrationsPath, cfg.PostgresURL())
	if err != nil {
		return errors.Wrap(err, "migrate.New")
	}
	defer m.Close()

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "migrate.Up")
	}

	return nil
}

func (s *Store) CloseDB() {
	s.db.Close()
}

func (s *Store) Group() storage.GroupRepoI {
	return s.group
}

func (s *Store) User() storage.UserRepoI {
	return s.user
}

func (s *Store) Project() storage.ProjectRepoI {
	return s.project
}

func (s *Store) Task() storage.TaskRepoI {
	return s.task
}

func (s *Store) Step() storage.StepRepoI {
	return s.step
}

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"ucode/ucode_go_task_service/config"
	"ucode/ucode_go_task_service/models"
	"ucode/ucode_go_task_service/pkg/logger"
	"ucode/ucode_go_task_service/storage"
	"ucode/ucode_go_task_service/storage/postgres"

	"github.com/google/uuid"
	"github.com/manveru/faker"
	"github.com/stretchr/testify/require"
)

var (
	strg     storage.StorageI
	fakeData *faker.Faker
)

// The repository tests need a disposable database, POSTGRES_HOST and friends
// come from the environment or .env. Without it only the unit tests run.
func TestMain(m *testing.M) {
	cfg := config.Load()
	if cfg.PostgresHost == "" {
		fmt.Println("POSTGRES_HOST is not set, skipping storage tests")
		os.Exit(m.Run())
	}

	cfg.PostgresMaxConnections = 10
	if path, ok := os.LookupEnv("MIGRATIONS_PATH"); !ok || path == "" {
		cfg.MigrationsPath = "../../migrations"
	}

	log := logger.NewLogger(cfg.ServiceName, logger.LevelDebug)
	defer func() {
		_ = logger.Cleanup(log)
	}()

	if err := postgres.Migrate(cfg); err != nil {
		panic(err)
	}

	var err error
	strg, err = postgres.NewPostgres(context.Background(), cfg, log)
	if err != nil {
		panic(err)
	}

	fakeData, err = faker.New("en")
	if err != nil {
		panic(err)
	}

	code := m.Run()
	strg.CloseDB()
	os.Exit(code)
}

func skipWithoutDB(t *testing.T) {
	if strg == nil {
		t.Skip("no database configured")
	}
}

func createUser(t *testing.T) *models.User {
	user, err := strg.User().Create(context.Background(), &models.CreateUserRequest{
		Email:     uuid.NewString()[:8] + "." + fakeData.Email(),
		FirstName: fakeData.FirstName(),
		LastName:  fakeData.LastName(),
		Password:  "secret-password",
	})
	require.NoError(t, err)

	return user
}

func createGroup(t *testing.T, owner *models.User) *models.Group {
	group, err := strg.Group().Create(context.Background(), &models.CreateGroupRequest{
		Name:    fakeData.CompanyName(),
		OwnerId: owner.Id,
	})
	require.NoError(t, err)

	return group
}

func createProject(t *testing.T, group *models.Group, owner *models.User) *models.Project {
	project, err := strg.Project().Create(context.Background(), &models.CreateProjectRequest{
		GroupId:     group.Id,
		OwnerId:     owner.Id,
		Name:        fakeData.CompanyName(),
		Description: fakeData.Sentence(6, false),
	})
	require.NoError(t, err)

	return project
}

func createTask(t *testing.T, project *models.Project, assignee *models.User) *models.Task {
	req := &models.CreateTaskRequest{
		GroupId:   project.GroupId,
		ProjectId: project.Id,
		Title:     fakeData.Sentence(4, false),
		Tags:      []string{"backend", "urgent"},
	}
	if assignee != nil {
		req.AssigneeId = assignee.Id
	}

	task, err := strg.Task().Create(context.Background(), req)
	require.NoError(t, err)

	return task
}

package storage

import (
	"context"
	"time"

	"ucode/ucode_go_task_service/models"
)

type StorageI interface {
	CloseDB()
	Group() GroupRepoI
	User() UserRepoI
	Project() ProjectRepoI
	Task() TaskRepoI
	Step() StepRepoI
}

type GroupRepoI interface {
	Create(ctx context.Context, req *models.CreateGroupRequest) (resp *models.Group, err error)
	GetByID(ctx context.Context, id string) (resp *models.Group, err error)
	GetList(ctx context.Context, req *models.GetListGroupsRequest) (resp *models.GetListGroupsResponse, err error)
	AddUser(ctx context.Context, req *models.AddGroupUserRequest) error
	HasUser(ctx context.Context, groupId, userId string) (bool, error)
}

type UserRepoI interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (resp *models.User, err error)
	GetByID(ctx context.Context, id string) (resp *models.User, err error)
	GetList(ctx context.Context, req *models.GetListUsersRequest) (resp *models.GetListUsersResponse, err error)
}

type ProjectRepoI interface {
	Create(ctx context.Context, req *models.CreateProjectRequest) (resp *models.Project, err error)
	GetByID(ctx context.Context, req *models.ProjectPrimaryKey) (resp *models.Project, err error)
	GetList(ctx context.Context, req *models.GetListProjectsRequest) (resp *models.GetListProjectsResponse, err error)
	Update(ctx context.Context, req *models.UpdateProjectRequest) (resp *models.Project, err error)
	Delete(ctx context.Context, req *models.ProjectPrimaryKey) error
}

type TaskRepoI interface {
	Create(ctx context.Context, req *models.CreateTaskRequest) (resp *models.Task, err error)
	GetByID(ctx context.Context, req *models.TaskPrimaryKey) (resp *models.Task, err error)
	GetList(ctx context.Context, req *models.GetListTasksRequest) (resp *models.GetListTasksResponse, err error)
	Update(ctx context.Context, req *models.UpdateTaskRequest) (resp *models.Task, err error)
	Delete(ctx context.Context, req *models.TaskPrimaryKey) error
	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)
}

type StepRepoI interface {
	Create(ctx context.Context, req *models.CreateStepRequest) (resp *models.Step, err error)
	GetList(ctx context.Context, req *models.GetListStepsRequest) (resp *models.GetListStepsResponse, err error)
	Update(ctx context.Context, req *models.UpdateStepRequest) (resp *models.Step, err error)
	Delete(ctx context.Context, req *models.StepPrimaryKey) error
}

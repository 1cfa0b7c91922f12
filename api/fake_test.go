package api_test

import (
	"context"

	"ucode/ucode_go_task_service/models"
	"ucode/ucode_go_task_service/storage"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// fakeStorage records the last request each repository saw and answers
// with canned data.
type fakeStorage struct {
	storage.StorageI
	users    *fakeUserRepo
	groups   *fakeGroupRepo
	projects *fakeProjectRepo
	tasks    *fakeTaskRepo
	steps    *fakeStepRepo
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		users:    &fakeUserRepo{},
		groups:   &fakeGroupRepo{},
		projects: &fakeProjectRepo{},
		tasks:    &fakeTaskRepo{},
		steps:    &fakeStepRepo{},
	}
}

func (f *fakeStorage) CloseDB()                      {}
func (f *fakeStorage) User() storage.UserRepoI       { return f.users }
func (f *fakeStorage) Group() storage.GroupRepoI     { return f.groups }
func (f *fakeStorage) Project() storage.ProjectRepoI { return f.projects }
func (f *fakeStorage) Task() storage.TaskRepoI       { return f.tasks }
func (f *fakeStorage) Step() storage.StepRepoI       { return f.steps }

type fakeUserRepo struct {
	storage.UserRepoI
	created *models.CreateUserRequest
}

func (f *fakeUserRepo) Create(_ context.Context, req *models.CreateUserRequest) (*models.User, error) {
	f.created = req
	return &models.User{Id: "u1", Email: req.Email, FirstName: req.FirstName}, nil
}

type fakeGroupRepo struct {
	storage.GroupRepoI
	added   *models.AddGroupUserRequest
	members map[string]bool
}

func (f *fakeGroupRepo) HasUser(_ context.Context, groupId, userId string) (bool, error) {
	return f.members[groupId+"/"+userId], nil
}

func (f *fakeGroupRepo) AddUser(_ context.Context, req *models.AddGroupUserRequest) error {
	f.added = req
	return nil
}

type fakeProjectRepo struct {
	storage.ProjectRepoI
	created *models.CreateProjectRequest
	err     error
}

func (f *fakeProjectRepo) Create(_ context.Context, req *models.CreateProjectRequest) (*models.Project, error) {
	f.created = req
	return &models.Project{Id: "p1", GroupId: req.GroupId, OwnerId: req.OwnerId, Name: req.Name}, nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, req *models.ProjectPrimaryKey) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}

	return &models.Project{Id: req.Id, GroupId: req.GroupId, Name: "Launch"}, nil
}

type fakeTaskRepo struct {
	storage.TaskRepoI
	list    []*models.Task
	listReq []models.GetListTasksRequest
	created *models.CreateTaskRequest
	err     error
}

func (f *fakeTaskRepo) Create(_ context.Context, req *models.CreateTaskRequest) (*models.Task, error) {
	f.created = req
	return &models.Task{Id: "t1", ProjectId: req.ProjectId, Title: req.Title, Status: "TODO"}, f.err
}

func (f *fakeTaskRepo) GetByID(_ context.Context, req *models.TaskPrimaryKey) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}

	return nil, status.Error(codes.NotFound, "not found")
}

func (f *fakeTaskRepo) GetList(_ context.Context, req *models.GetListTasksRequest) (*models.GetListTasksResponse, error) {
	f.listReq = append(f.listReq, *req)
	if f.err != nil {
		return nil, f.err
	}

	end := len(f.list)
	if req.Limit > 0 && req.Offset+req.Limit < end {
		end = req.Offset + req.Limit
	}

	page := []*models.Task{}
	if req.Offset < len(f.list) {
		page = f.list[req.Offset:end]
	}

	return &models.GetListTasksResponse{Tasks: page, Count: len(f.list)}, nil
}

type fakeStepRepo struct {
	storage.StepRepoI
	listReq *models.GetListStepsRequest
	deleted *models.StepPrimaryKey
}

func (f *fakeStepRepo) GetList(_ context.Context, req *models.GetListStepsRequest) (*models.GetListStepsResponse, error) {
	f.listReq = req
	return &models.GetListStepsResponse{Steps: []*models.Step{}}, nil
}

func (f *fakeStepRepo) Delete(_ context.Context, req *models.StepPrimaryKey) error {
	f.deleted = req
	return nil
}

package postgres

import (
	"context"
	"time"

	"ucode/ucode_go_task_service/config"
	"ucode/ucode_go_task_service/models"
	"ucode/ucode_go_task_service/pkg/helper"
	span "ucode/ucode_go_task_service/pkg/jaeger"
	"ucode/ucode_go_task_service/pkg/logger"
	"ucode/ucode_go_task_service/pkg/queryobject"
	psqlpool "ucode/ucode_go_task_service/pool"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type taskRepo struct {
	db  *psqlpool.Pool
	log logger.LoggerI
}

func NewTaskRepo(db *psqlpool.Pool, log logger.LoggerI) *taskRepo {
	return &taskRepo{
		db:  db,
		log: log,
	}
}

// taskSchema: task -> project -> workgroup, task -> assignee.
// The project filter keeps tasks inside the caller's group.
func taskSchema(projectId string) queryobject.TableSpec {
	schema := queryobject.TableSpec{
		Table:  "tasks",
		As:     "t",
		Select: "id,project_id,title,description,status,assignee_id,tags,due_at,created_at,updated_at,deleted_at",
		Includes: []queryobject.TableSpec{
			{
				Table:     "projects",
				As:        "project",
				Select:    "id,name,group_id,deleted_at",
				Where:     &queryobject.Filter{Column: "group_id", Param: "group_id"},
				LocalKey:  "id",
				TargetKey: "project_id",
				Includes: []queryobject.TableSpec{
					{
						Table:     "groups",
						As:        "workgroup",
						Select:    "id,name",
						LocalKey:  "id",
						TargetKey: "group_id",
					},
				},
			},
			userInclude("assignee", "assignee_id"),
		},
	}

	if projectId != "" {
		schema.Where = &queryobject.Filter{Column: "project_id", Param: "project_id"}
	}

	return schema
}

// liveTask drops deleted tasks and tasks whose project is deleted or outside
// the group, the project include comes back empty for those.
func liveTask() squirrel.And {
	return squirrel.And{
		squirrel.Eq{
			outputColumn("deleted_at"):         nil,
			outputColumn("project.deleted_at"): nil,
		},
		squirrel.NotEq{outputColumn("project.id"): nil},
	}
}

func (t *taskRepo) Create(ctx context.Context, req *models.CreateTaskRequest) (resp *models.Task, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "task.Create", req)
	defer dbSpan.Finish()

	var exists bool
	err = t.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1 AND group_id = $2 AND deleted_at IS NULL)`,
		req.ProjectId, req.GroupId,
	).Scan(&exists)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, t.log, "task.Create project check")
	}
	if !exists {
		return nil, helper.HandleDatabaseError(pgx.ErrNoRows, t.log, "task.Create project check")
	}

	taskId, status := uuid.NewString(), req.Status

	var assigneeId, dueAt any

	if status == "" {
		status = config.TASK_TODO
	}
	if req.AssigneeId != "" {
		assigneeId = req.AssigneeId
	}
	if req.DueAt != "" {
		dueAt = req.DueAt
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}

	query, args, err := psql.Insert("tasks").
		Columns("id", "project_id", "title", "description", "status", "assignee_id", "tags", "due_at").
		Values(taskId, req.ProjectId, req.Title, req.Description, status, assigneeId, pq.Array(req.Tags), dueAt).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build insert task")
	}

	if _, err = t.db.Exec(ctx, query, args...); err != nil {
		return nil, helper.HandleDatabaseError(err, t.log, "task.Create")
	}

	return t.GetByID(ctx, &models.TaskPrimaryKey{Id: taskId, GroupId: req.GroupId})
}

func (t *taskRepo) GetByID(ctx context.Context, req *models.TaskPrimaryKey) (resp *models.Task, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "task.GetByID", req)
	defer dbSpan.Finish()

	objects, _, err := queryObjectList(ctx, t.db, ObjectQuery{
		Schema:          taskSchema(""),
		WhereParameters: map[string]any{"group_id": req.GroupId},
		Where:           append(liveTask(), squirrel.Eq{outputColumn("id"): req.Id}),
		Limit:           1,
	})
	if err != nil {
		return nil, helper.HandleDatabaseError(err, t.log, "task.GetByID")
	}

	if len(objects) == 0 {
		return nil, helper.HandleDatabaseError(pgx.ErrNoRows, t.log, "task.GetByID")
	}

	resp = &models.Task{}
	if err = helper.MarshalToStruct(objects[0], resp); err != nil {
		return nil, errors.Wrap(err, "task.GetByID marshal")
	}

	return resp, nil
}

func (t *taskRepo) GetList(ctx context.Context, req *models.GetListTasksRequest) (resp *models.GetListTasksResponse, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "task.GetList", req)
	defer dbSpan.Finish()

	objects, count, err := queryObjectList(ctx, t.db, taskListQuery(req))
	if err != nil {
		return nil, helper.HandleDatabaseError(err, t.log, "task.GetList")
	}

	resp = &models.GetListTasksResponse{Count: count, Tasks: []*models.Task{}}
	if err = helper.MarshalToStruct(objects, &resp.Tasks); err != nil {
		return nil, errors.Wrap(err, "task.GetList marshal")
	}

	return resp, nil
}

func taskListQuery(req *models.GetListTasksRequest) ObjectQuery {
	var (
		params = map[string]any{"group_id": req.GroupId}
		where  = liveTask()
	)

	if req.ProjectId != "" {
		params["project_id"] = req.ProjectId
	}
	if req.Status != "" {
		where = append(where, squirrel.Eq{outputColumn("status"): req.Status})
	}
	if req.AssigneeId != "" {
		where = append(where, squirrel.Eq{outputColumn("assignee_id"): req.AssigneeId})
	}
	if req.Search != "" {
		where = append(where, squirrel.ILike{outputColumn("title"): "%" + req.Search + "%"})
	}

	return ObjectQuery{
		Schema:          taskSchema(req.ProjectId),
		WhereParameters: params,
		Where:           where,
		OrderBy:         []string{outputColumn("created_at") + " DESC"},
		Limit:           req.Limit,
		Offset:          req.Offset,
	}
}

func (t *taskRepo) Update(ctx context.Context, req *models.UpdateTaskRequest) (resp *models.Task, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "task.Update", req)
	defer dbSpan.Finish()

	set := map[string]any{"updated_at": squirrel.Expr("CURRENT_TIMESTAMP")}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Status != nil {
		set["status"] = *req.Status
	}
	if req.AssigneeId != nil {
		set["assignee_id"] = nullIfEmpty(*req.AssigneeId)
	}
	if req.Tags != nil {
		set["tags"] = pq.Array(*req.Tags)
	}
	if req.DueAt != nil {
		set["due_at"] = nullIfEmpty(*req.DueAt)
	}

	query, args, err := psql.Update("tasks").
		SetMap(set).
		Where(squirrel.Eq{"id": req.Id, "deleted_at": nil}).
		Where(inGroupProjects, req.GroupId).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build update task")
	}

	tag, err := t.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, t.log, "task.Update")
	}

	if tag.RowsAffected() == 0 {
		return nil, helper.HandleDatabaseError(pgx.ErrNoRows, t.log, "task.Update")
	}

	return t.GetByID(ctx, &models.TaskPrimaryKey{Id: req.Id, GroupId: req.GroupId})
}

func (t *taskRepo) Delete(ctx context.Context, req *models.TaskPrimaryKey) error {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "task.Delete", req)
	defer dbSpan.Finish()

	query, args, err := psql.Update("tasks").
		Set("deleted_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": req.Id, "deleted_at": nil}).
		Where(inGroupProjects, req.GroupId).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "build delete task")
	}

	tag, err := t.db.Exec(ctx, query, args...)
	if err != nil {
		return helper.HandleDatabaseError(err, t.log, "task.Delete")
	}

	if tag.RowsAffected() == 0 {
		return helper.HandleDatabaseError(pgx.ErrNoRows, t.log, "task.Delete")
	}

	return nil
}

// PurgeDeleted removes tasks soft deleted before the given moment, steps go
// with them through the foreign key.
func (t *taskRepo) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "task.PurgeDeleted", before)
	defer dbSpan.Finish()

	query, args, err := psql.Delete("tasks").
		Where(squirrel.Lt{"deleted_at": before}).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build purge tasks")
	}

	tag, err := t.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, helper.HandleDatabaseError(err, t.log, "task.PurgeDeleted")
	}

	return tag.RowsAffected(), nil
}

const inGroupProjects = "project_id IN (SELECT id FROM projects WHERE group_id = ? AND deleted_at IS NULL)"

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}

	return s
}

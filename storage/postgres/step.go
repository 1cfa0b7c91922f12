package postgres

import (
	"context"

	"ucode/ucode_go_task_service/models"
	"ucode/ucode_go_task_service/pkg/helper"
	span "ucode/ucode_go_task_service/pkg/jaeger"
	"ucode/ucode_go_task_service/pkg/logger"
	"ucode/ucode_go_task_service/pkg/queryobject"
	psqlpool "ucode/ucode_go_task_service/pool"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const inGroupTasks = `task_id IN (
	SELECT t.id FROM tasks t JOIN projects p ON p.id = t.project_id
	WHERE p.group_id = ? AND t.deleted_at IS NULL AND p.deleted_at IS NULL
)`

type stepRepo struct {
	db  *psqlpool.Pool
	log logger.LoggerI
}

func NewStepRepo(db *psqlpool.Pool, log logger.LoggerI) *stepRepo {
	return &stepRepo{
		db:  db,
		log: log,
	}
}

// stepSchema: step -> task -> project, the project scoped to a group.
func stepSchema(taskId string) queryobject.TableSpec {
	schema := queryobject.TableSpec{
		Table:  "steps",
		As:     "s",
		Select: "id,task_id,title,done,position,created_at,deleted_at",
		Includes: []queryobject.TableSpec{
			{
				Table:     "tasks",
				As:        "task",
				Select:    "id,project_id,title,status,deleted_at",
				LocalKey:  "id",
				TargetKey: "task_id",
				Includes: []queryobject.TableSpec{
					{
						Table:     "projects",
						As:        "project",
						Select:    "id,name,group_id,deleted_at",
						Where:     &queryobject.Filter{Column: "group_id", Param: "group_id"},
						LocalKey:  "id",
						TargetKey: "project_id",
					},
				},
			},
		},
	}

	if taskId != "" {
		schema.Where = &queryobject.Filter{Column: "task_id", Param: "task_id"}
	}

	return schema
}

func liveStep() squirrel.And {
	return squirrel.And{
		squirrel.Eq{
			outputColumn("deleted_at"):              nil,
			outputColumn("task.project.deleted_at"): nil,
			outputColumn("task.deleted_at"):         nil,
		},
		squirrel.NotEq{outputColumn("task.project.id"): nil},
	}
}

func (s *stepRepo) Create(ctx context.Context, req *models.CreateStepRequest) (resp *models.Step, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "step.Create", req)
	defer dbSpan.Finish()

	var exists bool
	err = s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tasks t JOIN projects p ON p.id = t.project_id
			WHERE t.id = $1 AND p.group_id = $2 AND t.deleted_at IS NULL AND p.deleted_at IS NULL
		)`,
		req.TaskId, req.GroupId,
	).Scan(&exists)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, s.log, "step.Create task check")
	}
	if !exists {
		return nil, helper.HandleDatabaseError(pgx.ErrNoRows, s.log, "step.Create task check")
	}

	stepId := uuid.NewString()

	query, args, err := psql.Insert("steps").
		Columns("id", "task_id", "title", "position").
		Values(stepId, req.TaskId, req.Title, req.Position).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build insert step")
	}

	if _, err = s.db.Exec(ctx, query, args...); err != nil {
		return nil, helper.HandleDatabaseError(err, s.log, "step.Create")
	}

	return s.getByID(ctx, &models.StepPrimaryKey{Id: stepId, GroupId: req.GroupId})
}

func (s *stepRepo) getByID(ctx context.Context, req *models.StepPrimaryKey) (*models.Step, error) {
	objects, _, err := queryObjectList(ctx, s.db, ObjectQuery{
		Schema:          stepSchema(""),
		WhereParameters: map[string]any{"group_id": req.GroupId},
		Where:           append(liveStep(), squirrel.Eq{outputColumn("id"): req.Id}),
		Limit:           1,
	})
	if err != nil {
		return nil, helper.HandleDatabaseError(err, s.log, "step.getByID")
	}

	if len(objects) == 0 {
		return nil, helper.HandleDatabaseError(pgx.ErrNoRows, s.log, "step.getByID")
	}

	resp := &models.Step{}
	if err = helper.MarshalToStruct(objects[0], resp); err != nil {
		return nil, errors.Wrap(err, "step.getByID marshal")
	}

	return resp, nil
}

func (s *stepRepo) GetList(ctx context.Context, req *models.GetListStepsRequest) (resp *models.GetListStepsResponse, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "step.GetList", req)
	defer dbSpan.Finish()

	var (
		params = map[string]any{"group_id": req.GroupId}
		where  = liveStep()
	)

	if req.TaskId != "" {
		params["task_id"] = req.TaskId
	}
	if req.Done != nil {
		where = append(where, squirrel.Eq{outputColumn("done"): *req.Done})
	}

	objects, count, err := queryObjectList(ctx, s.db, ObjectQuery{
		Schema:          stepSchema(req.TaskId),
		WhereParameters: params,
		Where:           where,
		OrderBy:         []string{outputColumn("position"), outputColumn("created_at")},
		Limit:           req.Limit,
		Offset:          req.Offset,
	})
	if err != nil {
		return nil, helper.HandleDatabaseError(err, s.log, "step.GetList")
	}

	resp = &models.GetListStepsResponse{Count: count, Steps: []*models.Step{}}
	if err = helper.MarshalToStruct(objects, &resp.Steps); err != nil {
		return nil, errors.Wrap(err, "step.GetList marshal")
	}

	return resp, nil
}

func (s *stepRepo) Update(ctx context.Context, req *models.UpdateStepRequest) (resp *models.Step, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "step.Update", req)
	defer dbSpan.Finish()

	set := map[string]any{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Done != nil {
		set["done"] = *req.Done
	}
	if req.Position != nil {
		set["position"] = *req.Position
	}

	if len(set) == 0 {
		return s.getByID(ctx, &models.StepPrimaryKey{Id: req.Id, GroupId: req.GroupId})
	}

	query, args, err := psql.Update("steps").
		SetMap(set).
		Where(squirrel.Eq{"id": req.Id, "deleted_at": nil}).
		Where(inGroupTasks, req.GroupId).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build update step")
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, s.log, "step.Update")
	}

	if tag.RowsAffected() == 0 {
		return nil, helper.HandleDatabaseError(pgx.ErrNoRows, s.log, "step.Update")
	}

	return s.getByID(ctx, &models.StepPrimaryKey{Id: req.Id, GroupId: req.GroupId})
}

func (s *stepRepo) Delete(ctx context.Context, req *models.StepPrimaryKey) error {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "step.Delete", req)
	defer dbSpan.Finish()

	query, args, err := psql.Update("steps").
		Set("deleted_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": req.Id, "deleted_at": nil}).
		Where(inGroupTasks, req.GroupId).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "build delete step")
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return helper.HandleDatabaseError(err, s.log, "step.Delete")
	}

	if tag.RowsAffected() == 0 {
		return helper.HandleDatabaseError(pgx.ErrNoRows, s.log, "step.Delete")
	}

	return nil
}

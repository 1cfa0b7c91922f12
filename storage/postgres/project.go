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

type projectRepo struct {
	db  *psqlpool.Pool
	log logger.LoggerI
}

func NewProjectRepo(db *psqlpool.Pool, log logger.LoggerI) *projectRepo {
	return &projectRepo{
		db:  db,
		log: log,
	}
}

// projectSchema: project -> workgroup, owner, scoped to one group.
func projectSchema() queryobject.TableSpec {
	return queryobject.TableSpec{
		Table:  "projects",
		As:     "p",
		Select: "id,name,description,group_id,owner_id,created_at,updated_at,deleted_at",
		Where:  &queryobject.Filter{Column: "group_id", Param: "group_id"},
		Includes: []queryobject.TableSpec{
			{
				Table:     "groups",
				As:        "workgroup",
				Select:    "id,name",
				LocalKey:  "id",
				TargetKey: "group_id",
			},
			userInclude("owner", "owner_id"),
		},
	}
}

// projectTaskCount counts the live tasks of every row of the wrapped tree.
const projectTaskCount = "(SELECT COUNT(*) FROM tasks WHERE tasks.project_id = q.id AND tasks.deleted_at IS NULL) AS task_count"

func (p *projectRepo) Create(ctx context.Context, req *models.CreateProjectRequest) (resp *models.Project, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "project.Create", req)
	defer dbSpan.Finish()

	projectId := uuid.NewString()

	query, args, err := psql.Insert("projects").
		Columns("id", "group_id", "owner_id", "name", "description").
		Values(projectId, req.GroupId, req.OwnerId, req.Name, req.Description).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build insert project")
	}

	if _, err = p.db.Exec(ctx, query, args...); err != nil {
		return nil, helper.HandleDatabaseError(err, p.log, "project.Create")
	}

	return p.GetByID(ctx, &models.ProjectPrimaryKey{Id: projectId, GroupId: req.GroupId})
}

func (p *projectRepo) GetByID(ctx context.Context, req *models.ProjectPrimaryKey) (resp *models.Project, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "project.GetByID", req)
	defer dbSpan.Finish()

	objects, _, err := queryObjectList(ctx, p.db, ObjectQuery{
		Schema:          projectSchema(),
		WhereParameters: map[string]any{"group_id": req.GroupId},
		Columns:         []string{projectTaskCount},
		Where: squirrel.Eq{
			outputColumn("id"):         req.Id,
			outputColumn("deleted_at"): nil,
		},
		Limit: 1,
	})
	if err != nil {
		return nil, helper.HandleDatabaseError(err, p.log, "project.GetByID")
	}

	if len(objects) == 0 {
		return nil, helper.HandleDatabaseError(pgx.ErrNoRows, p.log, "project.GetByID")
	}

	resp = &models.Project{}
	if err = helper.MarshalToStruct(objects[0], resp); err != nil {
		return nil, errors.Wrap(err, "project.GetByID marshal")
	}

	return resp, nil
}

func (p *projectRepo) GetList(ctx context.Context, req *models.GetListProjectsRequest) (resp *models.GetListProjectsResponse, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "project.GetList", req)
	defer dbSpan.Finish()

	where := squirrel.And{squirrel.Eq{outputColumn("deleted_at"): nil}}

	if req.OwnerId != "" {
		where = append(where, squirrel.Eq{outputColumn("owner_id"): req.OwnerId})
	}

	if req.Search != "" {
		where = append(where, squirrel.ILike{outputColumn("name"): "%" + req.Search + "%"})
	}

	objects, count, err := queryObjectList(ctx, p.db, ObjectQuery{
		Schema:          projectSchema(),
		WhereParameters: map[string]any{"group_id": req.GroupId},
		Columns:         []string{projectTaskCount},
		Where:           where,
		OrderBy:         []string{outputColumn("created_at") + " DESC"},
		Limit:           req.Limit,
		Offset:          req.Offset,
	})
	if err != nil {
		return nil, helper.HandleDatabaseError(err, p.log, "project.GetList")
	}

	resp = &models.GetListProjectsResponse{Count: count, Projects: []*models.Project{}}
	if err = helper.MarshalToStruct(objects, &resp.Projects); err != nil {
		return nil, errors.Wrap(err, "project.GetList marshal")
	}

	return resp, nil
}

func (p *projectRepo) Update(ctx context.Context, req *models.UpdateProjectRequest) (resp *models.Project, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "project.Update", req)
	defer dbSpan.Finish()

	set := map[string]any{"updated_at": squirrel.Expr("CURRENT_TIMESTAMP")}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.OwnerId != nil {
		set["owner_id"] = *req.OwnerId
	}

	query, args, err := psql.Update("projects").
		SetMap(set).
		Where(squirrel.Eq{"id": req.Id, "group_id": req.GroupId, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build update project")
	}

	tag, err := p.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, p.log, "project.Update")
	}

	if tag.RowsAffected() == 0 {
		return nil, helper.HandleDatabaseError(pgx.ErrNoRows, p.log, "project.Update")
	}

	return p.GetByID(ctx, &models.ProjectPrimaryKey{Id: req.Id, GroupId: req.GroupId})
}

func (p *projectRepo) Delete(ctx context.Context, req *models.ProjectPrimaryKey) error {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "project.Delete", req)
	defer dbSpan.Finish()

	query, args, err := psql.Update("projects").
		Set("deleted_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": req.Id, "group_id": req.GroupId, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "build delete project")
	}

	tag, err := p.db.Exec(ctx, query, args...)
	if err != nil {
		return helper.HandleDatabaseError(err, p.log, "project.Delete")
	}

	if tag.RowsAffected() == 0 {
		return helper.HandleDatabaseError(pgx.ErrNoRows, p.log, "project.Delete")
	}

	return nil
}

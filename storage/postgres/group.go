package postgres

import (
	"context"

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
	"github.com/pkg/errors"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type groupRepo struct {
	db  *psqlpool.Pool
	log logger.LoggerI
}

func NewGroupRepo(db *psqlpool.Pool, log logger.LoggerI) *groupRepo {
	return &groupRepo{
		db:  db,
		log: log,
	}
}

func groupSchema() queryobject.TableSpec {
	return queryobject.TableSpec{
		Table:  "groups",
		As:     "g",
		Select: "id,name,created_at",
	}
}

func (g *groupRepo) Create(ctx context.Context, req *models.CreateGroupRequest) (resp *models.Group, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "group.Create", req)
	defer dbSpan.Finish()

	groupId := uuid.NewString()

	tx, err := g.db.Begin(ctx)
	if err != nil {
		return nil, helper.HandleDatabaseError(err, g.log, "group.Create begin")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	query, args, err := psql.Insert("groups").
		Columns("id", "name").
		Values(groupId, req.Name).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build insert group")
	}

	if _, err = tx.Exec(ctx, query, args...); err != nil {
		return nil, helper.HandleDatabaseError(err, g.log, "group.Create insert")
	}

	query, args, err = psql.Insert("group_users").
		Columns("group_id", "user_id", "role").
		Values(groupId, req.OwnerId, config.ROLE_OWNER).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build insert group owner")
	}

	if _, err = tx.Exec(ctx, query, args...); err != nil {
		return nil, helper.HandleDatabaseError(err, g.log, "group.Create owner")
	}

	return &models.Group{Id: groupId, Name: req.Name}, nil
}

func (g *groupRepo) GetByID(ctx context.Context, id string) (resp *models.Group, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "group.GetByID", id)
	defer dbSpan.Finish()

	schema := groupSchema()
	schema.Where = &queryobject.Filter{Column: "id", Param: "id"}

	objects, err := QueryAsObject(ctx, g.db, schema, map[string]any{"id": id})
	if err != nil {
		return nil, helper.HandleDatabaseError(err, g.log, "group.GetByID")
	}

	if len(objects) == 0 {
		return nil, helper.HandleDatabaseError(pgx.ErrNoRows, g.log, "group.GetByID")
	}

	resp = &models.Group{}
	if err = helper.MarshalToStruct(objects[0], resp); err != nil {
		return nil, errors.Wrap(err, "group.GetByID marshal")
	}

	return resp, nil
}

func (g *groupRepo) GetList(ctx context.Context, req *models.GetListGroupsRequest) (resp *models.GetListGroupsResponse, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "group.GetList", req)
	defer dbSpan.Finish()

	var (
		schema = groupSchema()
		params = map[string]any{}
	)

	if req.UserId != "" {
		schema.Includes = append(schema.Includes, queryobject.TableSpec{
			Table:     "group_users",
			As:        "membership",
			Select:    "group_id,user_id,role",
			Where:     &queryobject.Filter{Column: "user_id", Param: "user_id"},
			LocalKey:  "group_id",
			TargetKey: "id",
		})
		params["user_id"] = req.UserId
	}

	objects, count, err := queryObjectList(ctx, g.db, ObjectQuery{
		Schema:          schema,
		WhereParameters: params,
		OrderBy:         []string{outputColumn("created_at") + " DESC"},
		Limit:           req.Limit,
		Offset:          req.Offset,
	})
	if err != nil {
		return nil, helper.HandleDatabaseError(err, g.log, "group.GetList")
	}

	resp = &models.GetListGroupsResponse{Count: count, Groups: []*models.Group{}}
	if err = helper.MarshalToStruct(objects, &resp.Groups); err != nil {
		return nil, errors.Wrap(err, "group.GetList marshal")
	}

	return resp, nil
}

func (g *groupRepo) AddUser(ctx context.Context, req *models.AddGroupUserRequest) error {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "group.AddUser", req)
	defer dbSpan.Finish()

	query, args, err := psql.Insert("group_users").
		Columns("group_id", "user_id", "role").
		Values(req.GroupId, req.UserId, req.Role).
		Suffix("ON CONFLICT (group_id, user_id) DO UPDATE SET role = EXCLUDED.role").
		ToSql()
	if err != nil {
		return errors.Wrap(err, "build insert group user")
	}

	if _, err = g.db.Exec(ctx, query, args...); err != nil {
		return helper.HandleDatabaseError(err, g.log, "group.AddUser")
	}

	return nil
}

func (g *groupRepo) HasUser(ctx context.Context, groupId, userId string) (bool, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "group.HasUser", groupId)
	defer dbSpan.Finish()

	var exists bool

	err := g.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM group_users WHERE group_id = $1 AND user_id = $2)`,
		groupId, userId,
	).Scan(&exists)
	if err != nil {
		return false, helper.HandleDatabaseError(err, g.log, "group.HasUser")
	}

	return exists, nil
}

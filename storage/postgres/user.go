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

type userRepo struct {
	db  *psqlpool.Pool
	log logger.LoggerI
}

func NewUserRepo(db *psqlpool.Pool, log logger.LoggerI) *userRepo {
	return &userRepo{
		db:  db,
		log: log,
	}
}

// userInclude joins a user under alias on parent.targetKey = alias.id.
func userInclude(alias, targetKey string) queryobject.TableSpec {
	return queryobject.TableSpec{
		Table:     "users",
		As:        alias,
		Select:    "id,email,first_name,last_name,full_name",
		Virtual:   &queryobject.Virtual{Field: "full_name", Execute: fullNameExpr(alias)},
		LocalKey:  "id",
		TargetKey: targetKey,
	}
}

func fullNameExpr(alias string) string {
	return "TRIM(" + alias + ".first_name || ' ' || " + alias + ".last_name)"
}

// userFullName is computed over the wrapped tree, the root projects columns only.
var userFullName = fullNameExpr("q") + " AS full_name"

func userSchema() queryobject.TableSpec {
	return queryobject.TableSpec{
		Table:  "users",
		As:     "u",
		Select: "id,email,first_name,last_name,created_at",
	}
}

func (u *userRepo) Create(ctx context.Context, req *models.CreateUserRequest) (resp *models.User, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "user.Create", req.Email)
	defer dbSpan.Finish()

	hash, err := helper.HashPasswordBcrypt(req.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	userId := uuid.NewString()

	query, args, err := psql.Insert("users").
		Columns("id", "email", "first_name", "last_name", "password_hash").
		Values(userId, req.Email, req.FirstName, req.LastName, hash).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build insert user")
	}

	if _, err = u.db.Exec(ctx, query, args...); err != nil {
		return nil, helper.HandleDatabaseError(err, u.log, "user.Create")
	}

	return u.GetByID(ctx, userId)
}

func (u *userRepo) GetByID(ctx context.Context, id string) (resp *models.User, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "user.GetByID", id)
	defer dbSpan.Finish()

	objects, _, err := queryObjectList(ctx, u.db, ObjectQuery{
		Schema:  userSchema(),
		Columns: []string{userFullName},
		Where:   squirrel.Eq{outputColumn("id"): id},
		Limit:   1,
	})
	if err != nil {
		return nil, helper.HandleDatabaseError(err, u.log, "user.GetByID")
	}

	if len(objects) == 0 {
		return nil, helper.HandleDatabaseError(pgx.ErrNoRows, u.log, "user.GetByID")
	}

	resp = &models.User{}
	if err = helper.MarshalToStruct(objects[0], resp); err != nil {
		return nil, errors.Wrap(err, "user.GetByID marshal")
	}

	return resp, nil
}

func (u *userRepo) GetList(ctx context.Context, req *models.GetListUsersRequest) (resp *models.GetListUsersResponse, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "user.GetList", req)
	defer dbSpan.Finish()

	var (
		schema = userSchema()
		params = map[string]any{}
		where  = squirrel.And{}
	)

	if req.GroupId != "" {
		schema.Includes = append(schema.Includes, queryobject.TableSpec{
			Table:     "group_users",
			As:        "membership",
			Select:    "user_id,group_id,role",
			Where:     &queryobject.Filter{Column: "group_id", Param: "group_id"},
			LocalKey:  "user_id",
			TargetKey: "id",
		})
		params["group_id"] = req.GroupId
	}

	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{outputColumn("email"): pattern},
			squirrel.ILike{fullNameExpr("q"): pattern},
		})
	}

	objects, count, err := queryObjectList(ctx, u.db, ObjectQuery{
		Schema:          schema,
		WhereParameters: params,
		Columns:         []string{userFullName},
		Where:           where,
		OrderBy:         []string{outputColumn("created_at") + " DESC"},
		Limit:           req.Limit,
		Offset:          req.Offset,
	})
	if err != nil {
		return nil, helper.HandleDatabaseError(err, u.log, "user.GetList")
	}

	resp = &models.GetListUsersResponse{Count: count, Users: []*models.User{}}
	if err = helper.MarshalToStruct(objects, &resp.Users); err != nil {
		return nil, errors.Wrap(err, "user.GetList marshal")
	}

	return resp, nil
}

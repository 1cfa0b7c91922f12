package helper

import (
	"fmt"

	"ucode/ucode_go_task_service/pkg/logger"
	"ucode/ucode_go_task_service/pkg/queryobject"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func HandleDatabaseError(err error, log logger.LoggerI, message string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return status.Error(codes.NotFound, "not found")
	}

	if errors.Is(err, queryobject.ErrSchema) {
		log.Error(message+": "+err.Error())
		return status.Error(codes.Internal, fmt.Sprintf("query schema: %v", err))
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		log.Error(message+": "+err.Error(), logger.String("column", pgErr.ColumnName), logger.String("code", pgErr.Code))

		switch pgErr.Code {
		case "23505":
			// Unique violation
			return status.Error(codes.AlreadyExists, err.Error())
		case "23503":
			// Foreign key violation
			return status.Error(codes.FailedPrecondition, fmt.Sprintf("foreign key violation: %v", pgErr.Message))
		case "23514":
			// Check constraint violation
			return status.Error(codes.InvalidArgument, fmt.Sprintf("check constraint violation: %v", pgErr.Message))
		case "23502":
			// Not null violation
			return status.Error(codes.InvalidArgument, fmt.Sprintf("not null violation: %v", pgErr.Message))
		case "22P02":
			// Invalid text representation, e.g. malformed uuid
			return status.Error(codes.InvalidArgument, fmt.Sprintf("invalid input: %v", pgErr.Message))
		case "08006":
			// Connection failure
			return status.Error(codes.Unavailable, fmt.Sprintf("connection failure: %v", pgErr.Message))
		case "42P01":
			// Undefined table
			return status.Error(codes.Internal, fmt.Sprintf("undefined table: %v", pgErr.Message))
		case "42703":
			// Undefined column
			return status.Error(codes.Internal, fmt.Sprintf("undefined column: %v", pgErr.Message))
		case "40P01":
			// Deadlock detected
			return status.Error(codes.Aborted, fmt.Sprintf("deadlock detected: %v", pgErr.Message))
		case "40001":
			// Serialization failure (common in concurrent transactions)
			return status.Error(codes.Aborted, "serialization failure, retry transaction")
		case "22003":
			// Numeric value out of range
			return status.Error(codes.OutOfRange, fmt.Sprintf("numeric value out of range: %v", pgErr.Message))
		default:
			return status.Error(codes.Internal, fmt.Sprintf("postgres error: %v", pgErr.Message))
		}
	}

	log.Error(message+": "+err.Error())

	return status.Error(codes.Internal, fmt.Sprintf("unknown error: %v", err))
}

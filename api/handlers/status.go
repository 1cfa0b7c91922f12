package handlers

import (
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Status struct {
	Code        int
	Status      string
	Description string
}

var (
	OK = Status{
		Code:        http.StatusOK,
		Status:      "OK",
		Description: "The request has succeeded",
	}
	Created = Status{
		Code:        http.StatusCreated,
		Status:      "CREATED",
		Description: "The request has been fulfilled and has resulted in one or more new resources being created",
	}
	NoContent = Status{
		Code:        http.StatusNoContent,
		Status:      "NO_CONTENT",
		Description: "There is no content to send for this request",
	}
	BadRequest = Status{
		Code:        http.StatusBadRequest,
		Status:      "BAD_REQUEST",
		Description: "The server could not understand the request due to invalid syntax",
	}
	Forbidden = Status{
		Code:        http.StatusForbidden,
		Status:      "FORBIDDEN",
		Description: "The client does not have access rights to the content",
	}
	NotFound = Status{
		Code:        http.StatusNotFound,
		Status:      "NOT_FOUND",
		Description: "The server can not find the requested resource",
	}
	Conflict = Status{
		Code:        http.StatusConflict,
		Status:      "CONFLICT",
		Description: "The request conflicts with the current state of the server",
	}
	UnprocessableEntity = Status{
		Code:        http.StatusUnprocessableEntity,
		Status:      "UNPROCESSABLE_ENTITY",
		Description: "The request was well-formed but the referenced resources are not in a usable state",
	}
	InternalServerError = Status{
		Code:        http.StatusInternalServerError,
		Status:      "INTERNAL_SERVER_ERROR",
		Description: "The server has encountered a situation it doesn't know how to handle",
	}
	ServiceUnavailable = Status{
		Code:        http.StatusServiceUnavailable,
		Status:      "SERVICE_UNAVAILABLE",
		Description: "The server is not ready to handle the request",
	}
)

// statusFromError maps the storage error taxonomy onto HTTP.
func statusFromError(err error) Status {
	switch status.Code(err) {
	case codes.InvalidArgument, codes.OutOfRange:
		return BadRequest
	case codes.NotFound:
		return NotFound
	case codes.AlreadyExists, codes.Aborted:
		return Conflict
	case codes.FailedPrecondition:
		return UnprocessableEntity
	case codes.PermissionDenied:
		return Forbidden
	case codes.Unavailable:
		return ServiceUnavailable
	default:
		return InternalServerError
	}
}

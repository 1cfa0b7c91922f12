package models

type Task struct {
	Id          string   `json:"id"`
	ProjectId   string   `json:"project_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	AssigneeId  string   `json:"assignee_id,omitempty"`
	Tags        []string `json:"tags"`
	DueAt       string   `json:"due_at,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`

	Project  *Project `json:"project,omitempty"`
	Assignee *User    `json:"assignee,omitempty"`
}

type CreateTaskRequest struct {
	GroupId     string   `json:"-"`
	ProjectId   string   `json:"project_id" binding:"required,uuid"`
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description"`
	Status      string   `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	AssigneeId  string   `json:"assignee_id" binding:"omitempty,uuid"`
	Tags        []string `json:"tags"`
	DueAt       string   `json:"due_at" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type UpdateTaskRequest struct {
	Id          string    `json:"-"`
	GroupId     string    `json:"-"`
	Title       *string   `json:"title" binding:"omitempty,max=255"`
	Description *string   `json:"description"`
	Status      *string   `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	AssigneeId  *string   `json:"assignee_id" binding:"omitempty,uuid"`
	Tags        *[]string `json:"tags"`
	DueAt       *string   `json:"due_at" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type TaskPrimaryKey struct {
	Id      string
	GroupId string
}

type GetListTasksRequest struct {
	GroupId    string
	ProjectId  string
	Status     string
	AssigneeId string
	Search     string
	Limit      int
	Offset     int
}

type GetListTasksResponse struct {
	Tasks []*Task `json:"tasks"`
	Count int     `json:"count"`
}

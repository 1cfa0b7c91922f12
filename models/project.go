package models

type Project struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GroupId     string `json:"group_id"`
	OwnerId     string `json:"owner_id"`
	TaskCount   int    `json:"task_count"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`

	Group *Group `json:"workgroup,omitempty"`
	Owner *User  `json:"owner,omitempty"`
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	GroupId     string `json:"-"`
	OwnerId     string `json:"owner_id" binding:"required,uuid"`
}

type UpdateProjectRequest struct {
	Id          string  `json:"-"`
	GroupId     string  `json:"-"`
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	OwnerId     *string `json:"owner_id" binding:"omitempty,uuid"`
}

type ProjectPrimaryKey struct {
	Id      string
	GroupId string
}

type GetListProjectsRequest struct {
	GroupId string
	OwnerId string
	Search  string
	Limit   int
	Offset  int
}

type GetListProjectsResponse struct {
	Projects []*Project `json:"projects"`
	Count    int        `json:"count"`
}

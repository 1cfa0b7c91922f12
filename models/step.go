package models

type Step struct {
	Id        string `json:"id"`
	TaskId    string `json:"task_id"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	Position  int    `json:"position"`
	CreatedAt string `json:"created_at,omitempty"`

	Task *Task `json:"task,omitempty"`
}

type CreateStepRequest struct {
	GroupId  string `json:"-"`
	TaskId   string `json:"task_id" binding:"required,uuid"`
	Title    string `json:"title" binding:"required,max=255"`
	Position int    `json:"position" binding:"gte=0"`
}

type UpdateStepRequest struct {
	Id       string  `json:"-"`
	GroupId  string  `json:"-"`
	Title    *string `json:"title" binding:"omitempty,max=255"`
	Done     *bool   `json:"done"`
	Position *int    `json:"position" binding:"omitempty,gte=0"`
}

type StepPrimaryKey struct {
	Id      string
	GroupId string
}

type GetListStepsRequest struct {
	GroupId string
	TaskId  string
	Done    *bool
	Limit   int
	Offset  int
}

type GetListStepsResponse struct {
	Steps []*Step `json:"steps"`
	Count int     `json:"count"`
}

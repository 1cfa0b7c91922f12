package models

type Group struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

type CreateGroupRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	OwnerId string `json:"owner_id" binding:"required,uuid"`
}

type AddGroupUserRequest struct {
	GroupId string `json:"-"`
	UserId  string `json:"user_id" binding:"required,uuid"`
	Role    string `json:"role" binding:"required,oneof=OWNER MEMBER"`
}

type GetListGroupsRequest struct {
	UserId string
	Limit  int
	Offset int
}

type GetListGroupsResponse struct {
	Groups []*Group `json:"groups"`
	Count  int      `json:"count"`
}

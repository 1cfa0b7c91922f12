package models

type User struct {
	Id        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required,max=255"`
	LastName  string `json:"last_name" binding:"max=255"`
	Password  string `json:"password" binding:"required,min=6"`
}

type GetListUsersRequest struct {
	GroupId string
	Search  string
	Limit   int
	Offset  int
}

type GetListUsersResponse struct {
	Users []*User `json:"users"`
	Count int     `json:"count"`
}

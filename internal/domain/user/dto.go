package user

type CreateUserInput struct {
	Username string  `json:"username" form:"username" binding:"required,min=3,max=50" example:"johndoe"`
	Password string  `json:"password" form:"password" binding:"required,min=6" example:"password123"`
	Email    string  `json:"email" form:"email" binding:"required,email" example:"user@example.com"`
	FullName *string `json:"full_name" form:"full_name" example:"John Doe"`
}

type LoginInput struct {
	Username string `json:"username" form:"username" binding:"required" example:"johndoe"`
	Password string `json:"password" form:"password" binding:"required" example:"password123"`
}

type UserDTO struct {
	UID      uint    `json:"u_id" example:"123"`
	Username string  `json:"username" example:"johndoe"`
	Email    string  `json:"email" example:"user@example.com"`
	FullName *string `json:"full_name" example:"John Doe"`
	IsAdmin  bool    `json:"is_admin" example:"false"`
}

func ToDTO(u User) UserDTO {
	return UserDTO{
		UID:      u.UID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		IsAdmin:  u.IsAdmin(),
	}
}

type LoginResponse struct {
	Token    string  `json:"token"`
	User     UserDTO `json:"user"`
	ExpireAt int64   `json:"expire_at"`
}

package user

import "bcal/models"

// SignUpRequest registers a new user inside an organization.
type SignUpRequest struct {
	OrganizationID string `json:"organization_id"`
	Email          string `json:"email" binding:"required,email"`
	Username       string `json:"username" binding:"required"`
	FullName       string `json:"full_name" binding:"required"`
	Password       string `json:"password" binding:"required,min=8"`
}

// SignInRequest authenticates an existing user.
type SignInRequest struct {
	OrganizationID string `json:"organization_id"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
}

// AuthSession is the result of a successful sign-in.
type AuthSession struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// UserService manages accounts and sessions.
type UserService interface {
	SignUp(req SignUpRequest) (*AuthSession, error)
	SignIn(req SignInRequest) (*AuthSession, error)
	SignOut(token string) error
	GetUserByID(id string) (*models.User, error)
	GetByEmail(orgID, email string) (*models.User, error)
	ListByOrg(orgID string) ([]models.User, error)
	Create(u *models.User) error
	Update(u *models.User) error
	Deactivate(id string) error
	UpdateFCMToken(userID, token string) error
}

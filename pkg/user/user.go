package user

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-" bson:"-"`
}

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
}

// SessionRepository tracks server-side session rows so issued tokens can be
// cut off before their exp claim runs out.
type SessionRepository interface {
	Create(userID, sessionID string) (string, error)
	IsValid(userID string) (bool, error)
	Invalidate(userID string) error
}

package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserName    string        `bson:"userName,omitempty" json:"userName,omitempty"`
	FirstName   string        `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName    string        `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Gender      string        `bson:"gender,omitempty" json:"gender,omitempty"`
	Age         int           `bson:"age,omitempty" json:"age,omitempty"`
	Email       string        `bson:"email,omitempty" json:"email,omitempty"`
	Admin       bool          `bson:"admin" json:"admin"`
	Credentials `bson:",inline" json:"-"`
	CreatedAt   time.Time `bson:"createdAt,omitempty" json:"createdAt,omitzero"`
	UpdatedAt   time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitzero"`
}

func (u *User) AccountID() string        { return u.ID.Hex() }
func (u *User) AccountEmail() string     { return u.Email }
func (u *User) AccountKind() AccountKind { return KindUser }
func (u *User) Creds() *Credentials      { return &u.Credentials }

func (u *User) Role() string {
	if u.Admin {
		return RoleAdmin
	}
	return RoleUser
}

// UserUpdate carries the fields of a PUT. Nil fields are left untouched.
type UserUpdate struct {
	UserName  *string
	FirstName *string
	LastName  *string
	Gender    *string
	Age       *int
	Email     *string
	Admin     *bool
}

type UserRepository interface {
	AccountRepository
	Find(ctx context.Context, opts ListOptions) ([]*User, error)
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*User, error)
	Delete(ctx context.Context, id string) (*User, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type UserUsecase interface {
	ListUsers(ctx context.Context, opts ListOptions) ([]*User, error)
	// CreateUser stores the user and returns a session token for it.
	CreateUser(ctx context.Context, user *User, plainPassword string) (string, error)
	GetUser(ctx context.Context, id string) (*User, error)
	UpdateUser(ctx context.Context, p Principal, id string, update UserUpdate) (*User, error)
	DeleteUser(ctx context.Context, p Principal, id string) (*User, error)
	DeleteUsers(ctx context.Context) (int64, error)
	EnsureAdmin(ctx context.Context, email, plainPassword string) error
}

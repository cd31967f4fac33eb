package roster

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// AdminUsername is the one account that holds the admin role.
const AdminUsername = "admin"

// RoleOf derives the role from the username alone.
func RoleOf(username string) Role {
	if username == AdminUsername {
		return RoleAdmin
	}
	return RoleStudent
}

type UserRecord struct {
	Username string
	Password string
}

func (u UserRecord) Role() Role { return RoleOf(u.Username) }

func (u UserRecord) IsAdmin() bool { return u.Role() == RoleAdmin }

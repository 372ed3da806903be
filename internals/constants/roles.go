package constants

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

var (
	StaffOnly = []string{RoleTeacher, RoleAdmin}
	AdminOnly = []string{RoleAdmin}
)

func IsStaffRole(role string) bool {
	return role == RoleTeacher || role == RoleAdmin
}

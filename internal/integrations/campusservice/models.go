package campusservice

// Room аудитория из справочника кампуса
type Room struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}

// Роли пользователей в справочнике кампуса
const (
	RoleStaff      = "staff"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// User пользователь из справочника кампуса
type User struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

// IsAdmin возвращает true для администратора или суперадминистратора
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// IsSuperAdmin возвращает true для суперадминистратора
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

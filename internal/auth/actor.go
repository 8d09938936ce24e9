// Package auth 定义请求的授权上下文。
//
// Actor 在 HTTP 边界由 JWT 中间件构造一次，随后作为显式参数传入业务层，
// 业务层不再读取任何全局会话状态。
package auth

// 角色
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
)

// Actor 当前操作者
type Actor struct {
	UserID string
	Role   string
}

// HasRole 判断操作者是否具有给定角色之一
func (a Actor) HasRole(roles ...string) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// IsZero 未认证的空操作者
func (a Actor) IsZero() bool {
	return a.UserID == ""
}

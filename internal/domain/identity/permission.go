package identity

// CanManage reports whether actor may edit, delete or reset the password of target.
//
// A superadmin may manage anyone. Nobody else may touch a superadmin.
// Managing another account requires the admin tier, and admins may not manage each other.
// Every user may manage their own account.
func CanManage(target, actor *User) bool {
	if actor == nil || target == nil {
		return false
	}
	if actor.IsSuperAdmin() {
		return true
	}
	if target.IsSuperAdmin() {
		return false
	}
	if target.ID != actor.ID {
		if !actor.IsAdmin() {
			return false
		}
		if target.IsAdmin() {
			return false
		}
	}
	return true
}

// CanAdminister reports whether the user holds the admin or superadmin tier
func CanAdminister(actor *User) bool {
	return actor != nil && (actor.IsAdmin() || actor.IsSuperAdmin())
}

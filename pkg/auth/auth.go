// Package auth decides whether a caller may run a mutating operation
// (catalog sync, joke add, joke delete). Read-only lookups are never
// gated.
package auth

// Authorized reports whether the caller holds at least one of the
// required roles. An empty required set denies everything: mutating
// operations always need an explicit role grant.
func Authorized(callerRoles, requiredRoles []string) bool {
	if len(requiredRoles) == 0 {
		return false
	}
	required := make(map[string]struct{}, len(requiredRoles))
	for _, r := range requiredRoles {
		required[r] = struct{}{}
	}
	for _, r := range callerRoles {
		if _, ok := required[r]; ok {
			return true
		}
	}
	return false
}

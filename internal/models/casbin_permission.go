package models

// PermissionInfo binds one route to the capability required to call it.
type PermissionInfo struct {
	Path       string     `json:"path"`
	Method     string     `json:"method"`
	Capability Capability `json:"capability"`
	Group      string     `json:"group"`
}

package domain

// Workspace is the top-level grouping for tasks and tags.
type Workspace string

const (
	WorkspaceWork     Workspace = "WORK"
	WorkspacePersonal Workspace = "PERSONAL"
)

// Valid reports whether the workspace is a known value.
func (w Workspace) Valid() bool {
	switch w {
	case WorkspaceWork, WorkspacePersonal:
		return true
	}
	return false
}

// Workspaces lists all valid workspace values.
func Workspaces() []Workspace {
	return []Workspace{WorkspaceWork, WorkspacePersonal}
}

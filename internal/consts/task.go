package consts

const (
	EntityTask = "task"
	TableTask  = "task"

	DefaultTenantID  int64 = 123
	DefaultTaskTitle       = "untitled"
)

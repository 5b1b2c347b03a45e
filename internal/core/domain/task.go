package domain

// Task represents a unit of work in the task graph.
// Identity is the declared output set: each output path belongs to exactly
// one producing task. Index is the position of the task in the resolved
// task list and serves as the stable scheduling tie-break.
// It uses InternedString for fields that are frequently repeated to save memory.
type Task struct {
	ID          InternedString
	Inputs      []InternedString
	Outputs     []InternedString
	Command     []string
	Environment map[string]string
	Index       int
}

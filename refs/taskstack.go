package refs

import "github.com/evbdd/qsim/node"

// Syncer is anything that eventually produces a node.Edge when synced —
// task.Handle satisfies this without refs needing to import task.
type Syncer interface {
	Sync() (node.Edge, error)
}

// TaskStack is the task-reference channel (spec §4.7): a LIFO of
// in-flight task handles whose eventual results are to be kept live.
// Once a task is synced, its result becomes an ordinary Stack entry,
// which is what SyncTop does here. evbdd's GC does not walk a TaskStack
// (see package doc).
type TaskStack struct {
	tasks []Syncer
}

// NewTaskStack returns an empty TaskStack.
func NewTaskStack() *TaskStack { return &TaskStack{} }

// Push registers t as an in-flight task whose result must be protected.
func (ts *TaskStack) Push(t Syncer) {
	ts.tasks = append(ts.tasks, t)
}

// Len reports the number of currently tracked in-flight tasks.
func (ts *TaskStack) Len() int { return len(ts.tasks) }

// SyncTop blocks on the most recently pushed task, removes it from the
// stack, and pushes its result onto values so it continues to be
// protected as an ordinary value-stack entry (spec §4.7: "each entry
// becomes a normal value-stack entry after the task is synced").
func (ts *TaskStack) SyncTop(values *Stack) (node.Edge, error) {
	n := len(ts.tasks)
	if n == 0 {
		return 0, errNoTasks
	}
	t := ts.tasks[n-1]
	ts.tasks = ts.tasks[:n-1]

	e, err := t.Sync()
	if err != nil {
		return 0, err
	}
	values.Push(e)
	return e, nil
}

var errNoTasks = taskStackEmptyError{}

type taskStackEmptyError struct{}

func (taskStackEmptyError) Error() string { return "refs: task stack is empty" }

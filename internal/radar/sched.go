package radar

import "time"

// TaskHandle identifies a pending delayed task. Zero is never a live handle.
type TaskHandle int64

type delayedTask struct {
	id  TaskHandle
	due time.Time
	seq int64 // insertion order, breaks due-time ties
	fn  func()
}

// taskQueue is the engine's delayed-task scheduler. Tasks fire when the
// engine tick passes their due time, one at a time, in (due, insertion)
// order. Callbacks may schedule or cancel further tasks.
type taskQueue struct {
	tasks   []delayedTask
	nextID  TaskHandle
	nextSeq int64
}

// after schedules fn to run once d has elapsed past now.
func (q *taskQueue) after(now time.Time, d time.Duration, fn func()) TaskHandle {
	q.nextID++
	q.nextSeq++
	q.tasks = append(q.tasks, delayedTask{
		id:  q.nextID,
		due: now.Add(d),
		seq: q.nextSeq,
		fn:  fn,
	})
	return q.nextID
}

// cancel drops a pending task. Unknown or already-fired handles are a no-op.
func (q *taskQueue) cancel(h TaskHandle) {
	for i := range q.tasks {
		if q.tasks[i].id == h {
			q.tasks = append(q.tasks[:i], q.tasks[i+1:]...)
			return
		}
	}
}

// runDue fires every task whose due time has passed, earliest first. Tasks
// scheduled by a firing callback with an already-elapsed delay run in the
// same drain.
func (q *taskQueue) runDue(now time.Time) {
	for {
		best := -1
		for i := range q.tasks {
			if q.tasks[i].due.After(now) {
				continue
			}
			if best < 0 {
				best = i
				continue
			}
			b := q.tasks[best]
			t := q.tasks[i]
			if t.due.Before(b.due) || (t.due.Equal(b.due) && t.seq < b.seq) {
				best = i
			}
		}
		if best < 0 {
			return
		}
		task := q.tasks[best]
		q.tasks = append(q.tasks[:best], q.tasks[best+1:]...)
		task.fn()
	}
}

// clear drops all pending tasks without running them.
func (q *taskQueue) clear() {
	q.tasks = q.tasks[:0]
}

// pending reports how many tasks are waiting.
func (q *taskQueue) pending() int {
	return len(q.tasks)
}

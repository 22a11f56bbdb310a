// Package respawn orders pending respawns.
package respawn

import (
	"cmp"
	"container/heap"
	"slices"
	"time"

	"github.com/udisondev/worldcore/internal/spawn"
)

// Info is a pending respawn of one spawn.
type Info struct {
	Type        spawn.SpawnObjectType
	SpawnID     uint64
	Entry       uint32
	RespawnTime time.Time
	GridID      uint32 // Cell.ID of the grid holding the spawn

	index int // heap position, -1 when not queued
}

// Compare orders respawns by time, then spawn id, then object type.
// Two distinct entries are equal only if all three match.
func Compare(a, b *Info) int {
	if a == b {
		return 0
	}
	if c := a.RespawnTime.Compare(b.RespawnTime); c != 0 {
		return c
	}
	if c := cmp.Compare(a.SpawnID, b.SpawnID); c != 0 {
		return c
	}
	return cmp.Compare(a.Type, b.Type)
}

type key struct {
	t  spawn.SpawnObjectType
	id uint64
}

// Queue is a min-queue of respawns ordered by Compare, holding at most one
// entry per (type, spawn id). Not safe for concurrent use.
type Queue struct {
	h     infoHeap
	byKey map[key]*Info
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{byKey: make(map[key]*Info)}
}

// Add queues info. If the spawn is already queued, the entry respawning
// first wins: a later info is rejected and Add returns false.
func (q *Queue) Add(info *Info) bool {
	k := key{info.Type, info.SpawnID}
	if old, ok := q.byKey[k]; ok {
		if info.RespawnTime.After(old.RespawnTime) {
			return false
		}
		heap.Remove(&q.h, old.index)
		old.index = -1
	}
	q.byKey[k] = info
	heap.Push(&q.h, info)
	return true
}

// Get returns the queued respawn of a spawn, nil if none.
func (q *Queue) Get(t spawn.SpawnObjectType, spawnID uint64) *Info {
	return q.byKey[key{t, spawnID}]
}

// Remove drops the queued respawn of a spawn and returns it.
func (q *Queue) Remove(t spawn.SpawnObjectType, spawnID uint64) *Info {
	k := key{t, spawnID}
	info, ok := q.byKey[k]
	if !ok {
		return nil
	}
	delete(q.byKey, k)
	heap.Remove(&q.h, info.index)
	info.index = -1
	return info
}

// Len returns the number of queued respawns.
func (q *Queue) Len() int {
	return len(q.h)
}

// Peek returns the next respawn without removing it.
func (q *Queue) Peek() *Info {
	if len(q.h) == 0 {
		return nil
	}
	return q.h[0]
}

// All returns copies of every queued respawn in respawn order.
func (q *Queue) All() []Info {
	out := make([]Info, 0, len(q.h))
	for _, info := range q.h {
		cp := *info
		cp.index = -1
		out = append(out, cp)
	}
	slices.SortFunc(out, func(a, b Info) int { return Compare(&a, &b) })
	return out
}

// PopDue removes and returns, in order, every respawn due at now.
func (q *Queue) PopDue(now time.Time) []*Info {
	var due []*Info
	for len(q.h) > 0 && !q.h[0].RespawnTime.After(now) {
		info := heap.Pop(&q.h).(*Info)
		delete(q.byKey, key{info.Type, info.SpawnID})
		due = append(due, info)
	}
	return due
}

type infoHeap []*Info

func (h infoHeap) Len() int           { return len(h) }
func (h infoHeap) Less(i, j int) bool { return Compare(h[i], h[j]) < 0 }

func (h infoHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *infoHeap) Push(x any) {
	info := x.(*Info)
	info.index = len(*h)
	*h = append(*h, info)
}

func (h *infoHeap) Pop() any {
	old := *h
	n := len(old)
	info := old[n-1]
	old[n-1] = nil
	info.index = -1
	*h = old[:n-1]
	return info
}

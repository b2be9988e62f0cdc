package naming

import "sync"

// CollisionResolver tracks which input file claimed each output path during
// a run. Two episodes of different shows, or a duplicate rip of the same
// episode, resolve to the same S##E##.mp3; the later claim overwrites the
// earlier file, and the resolver lets the caller report that. All methods
// are goroutine-safe.
type CollisionResolver struct {
	mu     sync.Mutex
	owners map[string]string // output path -> input path that last claimed it
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{owners: make(map[string]string)}
}

// Claim records input as the owner of output. It returns the previous owner
// when a different input had already claimed output, or "" otherwise.
func (cr *CollisionResolver) Claim(input, output string) (previous string) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	owner, exists := cr.owners[output]
	cr.owners[output] = input
	if !exists || owner == input {
		return ""
	}
	return owner
}

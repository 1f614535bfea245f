package wave

// Spawner releases a plan's spawns over time. Each spawn's Delay is the wait
// before the next one; the first spawn is released on the first tick.
type Spawner struct {
	spawns  []Spawn
	next    int
	timer   float64
	elapsed float64
}

// NewSpawner creates a spawner over spawns.
func NewSpawner(spawns []Spawn) *Spawner {
	return &Spawner{spawns: spawns}
}

// Tick advances time by dt seconds and returns the spawns due, in order.
func (s *Spawner) Tick(dt float64) []Spawn {
	if dt > 0 {
		s.elapsed += dt
		s.timer -= dt
	}

	var due []Spawn
	for s.next < len(s.spawns) && s.timer <= 0 {
		sp := s.spawns[s.next]
		due = append(due, sp)
		s.timer += sp.Delay
		s.next++
	}
	return due
}

// Done reports whether every spawn has been released.
func (s *Spawner) Done() bool {
	return s.next >= len(s.spawns)
}

// Released returns how many spawns have been released.
func (s *Spawner) Released() int {
	return s.next
}

// Remaining returns how many spawns are still pending.
func (s *Spawner) Remaining() int {
	return len(s.spawns) - s.next
}

// Elapsed returns the seconds ticked so far.
func (s *Spawner) Elapsed() float64 {
	return s.elapsed
}

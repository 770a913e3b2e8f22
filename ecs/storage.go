package ecs

// entityStore tracks slot generations and free slots.
type entityStore struct {
	gen  []generation
	free []entityIndex
}

func (s *entityStore) create() EntityID {
	if s == nil {
		return 0
	}
	if len(s.free) > 0 {
		idx := s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
		return makeEntityID(idx, s.gen[idx-1])
	}
	s.gen = append(s.gen, 0)
	return makeEntityID(entityIndex(len(s.gen)), 0)
}

func (s *entityStore) destroy(id EntityID) bool {
	if !s.isAlive(id) {
		return false
	}
	idx := id.index()
	s.gen[idx-1]++
	s.free = append(s.free, idx)
	return true
}

func (s *entityStore) isAlive(id EntityID) bool {
	if s == nil {
		return false
	}
	idx := id.index()
	if idx == 0 || int(idx) > len(s.gen) {
		return false
	}
	return s.gen[idx-1] == id.generation()
}

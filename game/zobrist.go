package game

// Zobrist holds one random key per board feature (piece kind on square) and
// one for the side to move. Hashes are built by XOR-ing the keys of present
// features, so a move updates the hash with a handful of XORs.
type Zobrist struct {
	keys []uint64
	side uint64
}

// NewZobrist returns a deterministic table of n feature keys.
func NewZobrist(n int, seed uint64) *Zobrist {
	rng := splitmix64{state: 0x9e3779b97f4a7c15 ^ seed}
	z := &Zobrist{keys: make([]uint64, n)}
	for i := range z.keys {
		z.keys[i] = rng.next()
	}
	z.side = rng.next()
	return z
}

func (z *Zobrist) Key(feature int) uint64 {
	return z.keys[feature]
}

// Side is XOR-ed in while Second is to move.
func (z *Zobrist) Side() uint64 {
	return z.side
}

// SideKey returns the side contribution for p.
func (z *Zobrist) SideKey(p Player) uint64 {
	if p == Second {
		return z.side
	}
	return 0
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

package game

// Player identifies a side. First always moves first.
type Player int8

const (
	First Player = iota
	Second
)

func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	if p == First {
		return "first"
	}
	return "second"
}

// Result is the outcome of a game, NoResult while the game is still running.
type Result int8

const (
	NoResult Result = iota
	FirstWon
	SecondWon
	Draw
)

// WinFor returns the result in which p wins.
func WinFor(p Player) Result {
	if p == First {
		return FirstWon
	}
	return SecondWon
}

func (r Result) Decided() bool {
	return r != NoResult
}

// Winner returns the winning player, false for draws and undecided games.
func (r Result) Winner() (Player, bool) {
	switch r {
	case FirstWon:
		return First, true
	case SecondWon:
		return Second, true
	default:
		return First, false
	}
}

func (r Result) String() string {
	switch r {
	case FirstWon:
		return "first"
	case SecondWon:
		return "second"
	case Draw:
		return "draw"
	default:
		return "none"
	}
}

// Token is returned by State.Apply and must be handed back to State.Undo.
// It records the height of the undo stack before the move was applied.
type Token int

// State is a mutable game position. Search applies and undoes moves in place
// in strict LIFO order; only MCTS simulations work on clones.
type State interface {
	// ToMove returns the player whose turn it is.
	ToMove() Player
	// LegalMoves returns the moves available to p, without duplicates and
	// never containing Pass. Order is the generation order.
	LegalMoves(p Player) []Move
	// Apply plays m for p. Pass is a null move that hands the turn over.
	Apply(m Move, p Player) Token
	// Undo reverts the most recent unpaired Apply. Any other token panics.
	Undo(t Token)
	// Result reports whether the game is over and who won.
	Result() Result
	// Hash identifies the position, side to move included.
	Hash() uint64
	// Clone returns an independent deep copy.
	Clone() State
}

// Evaluate statically scores s from perspective's point of view.
// Decided positions must score ±WinScore (0 for draws), which dominates
// every heuristic value.
type Evaluate func(s State, perspective Player) int

// Notation converts moves to and from the referee's coordinate tokens.
type Notation interface {
	Format(m Move) string
	Parse(fields []string) (Move, error)
}

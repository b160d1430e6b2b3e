package communication

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Hortensjaa/AI-course/utils"
)

// Kind identifies a referee command.
type Kind int

const (
	UGO Kind = iota
	HEDID
	ONEMORE
	BYE
)

func (k Kind) String() string {
	switch k {
	case UGO:
		return "UGO"
	case HEDID:
		return "HEDID"
	case ONEMORE:
		return "ONEMORE"
	default:
		return "BYE"
	}
}

// Command is one line received from the referee. Timeouts are set for UGO
// and HEDID, Move holds the opponent's coordinate tokens of HEDID.
type Command struct {
	Kind        Kind
	MoveTimeout time.Duration
	GameTimeout time.Duration
	Move        []string
}

// Communicator abstracts the referee connection.
type Communicator interface {
	Receive() (Command, error)
	Ready() error
	Send(move string) error
}

// Conn speaks the line protocol over a reader and a writer, typically stdin
// and stdout. Every reply is flushed immediately.
type Conn struct {
	scanner *bufio.Scanner
	w       *bufio.Writer
}

func NewConn(r io.Reader, w io.Writer) *Conn {
	return &Conn{scanner: bufio.NewScanner(r), w: bufio.NewWriter(w)}
}

// Receive blocks until the next non-empty line. It returns io.EOF once the
// input is closed.
func (c *Conn) Receive() (Command, error) {
	for c.scanner.Scan() {
		line := strings.TrimSpace(c.scanner.Text())
		if line == "" {
			continue
		}
		return ParseCommand(line)
	}
	if err := c.scanner.Err(); err != nil {
		return Command{}, errors.Wrap(err, "failed to read command")
	}
	return Command{}, io.EOF
}

func (c *Conn) Ready() error {
	return c.say("RDY")
}

// Send answers with a move already formatted by the game's notation.
func (c *Conn) Send(move string) error {
	return c.say("IDO " + move)
}

func (c *Conn) say(line string) error {
	if _, err := c.w.WriteString(line + "\n"); err != nil {
		return errors.Wrapf(err, "failed to send %q", line)
	}
	return errors.Wrapf(c.w.Flush(), "failed to send %q", line)
}

func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errors.New("empty command")
	}
	switch fields[0] {
	case "ONEMORE":
		return Command{Kind: ONEMORE}, nil
	case "BYE":
		return Command{Kind: BYE}, nil
	case "UGO":
		cmd := Command{Kind: UGO}
		err := parseTimeouts(&cmd, fields[1:])
		return cmd, errors.WithMessage(err, "UGO")
	case "HEDID":
		cmd := Command{Kind: HEDID}
		if err := parseTimeouts(&cmd, fields[1:]); err != nil {
			return cmd, errors.WithMessage(err, "HEDID")
		}
		cmd.Move = fields[3:]
		if len(cmd.Move) == 0 {
			return cmd, errors.New("HEDID: missing move")
		}
		return cmd, nil
	default:
		return Command{}, errors.Errorf("unknown command %q", fields[0])
	}
}

func parseTimeouts(cmd *Command, args []string) error {
	if len(args) < 2 {
		return errors.Errorf("expected move and game timeouts, got %d fields", len(args))
	}
	move, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return errors.Wrapf(err, "move timeout %q", args[0])
	}
	total, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return errors.Wrapf(err, "game timeout %q", args[1])
	}
	cmd.MoveTimeout, cmd.GameTimeout = utils.Seconds(move), utils.Seconds(total)
	return nil
}

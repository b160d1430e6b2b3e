package metrics

import (
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/pkg/errors"
)

type AgentConfig struct {
	ID   int32  `parquet:"id"`
	Name string `parquet:"name,dict"`
	Spec string `parquet:"spec,dict"`
}

type GameRecord struct {
	ID             int32  `parquet:"id"`
	Variant        string `parquet:"variant,dict"`
	Agent1         int32  `parquet:"agent1"` // plays First
	Agent2         int32  `parquet:"agent2"`
	Winner         string `parquet:"winner,dict"`
	StartUnixMilli int64  `parquet:"start_unix_ms"`
	DurationMs     int64  `parquet:"duration_ms"`
	TotalMoves     int32  `parquet:"total_moves"`
}

type MoveRecord struct {
	Game         int32  `parquet:"game"`
	Step         int32  `parquet:"step"`
	Player       int32  `parquet:"player"`
	Agent        int32  `parquet:"agent"`
	Move         string `parquet:"move"`
	Strategy     string `parquet:"strategy,dict"`
	BudgetUs     int64  `parquet:"budget_us"`
	DurationUs   int64  `parquet:"duration_us"`
	Nodes        int32  `parquet:"nodes"`
	CacheHits    int32  `parquet:"cache_hits"`
	Cutoffs      int32  `parquet:"cutoffs"`
	Depth        int32  `parquet:"depth"`
	TimedOut     bool   `parquet:"timed_out"`
	Score        int32  `parquet:"score"`
	Episodes     int32  `parquet:"episodes"`
	FullPlayouts int32  `parquet:"full_playouts"`
	IsTreeReset  bool   `parquet:"is_tree_reset"`
}

func NewGameRecord(id int32, variant string, agent1, agent2 int32, gm GameMetric) GameRecord {
	return GameRecord{
		ID:             id,
		Variant:        variant,
		Agent1:         agent1,
		Agent2:         agent2,
		Winner:         gm.Winner,
		StartUnixMilli: gm.StartTime.UnixMilli(),
		DurationMs:     gm.Duration.Milliseconds(),
		TotalMoves:     int32(gm.TotalMoves),
	}
}

func NewMoveRecord(game, agent int32, mm MoveMetric) MoveRecord {
	return MoveRecord{
		Game:         game,
		Step:         int32(mm.Step),
		Player:       int32(mm.Player),
		Agent:        agent,
		Move:         mm.Move,
		Strategy:     mm.Strategy,
		BudgetUs:     mm.Budget.Microseconds(),
		DurationUs:   mm.Duration.Microseconds(),
		Nodes:        int32(mm.Nodes),
		CacheHits:    int32(mm.CacheHits),
		Cutoffs:      int32(mm.Cutoffs),
		Depth:        int32(mm.Depth),
		TimedOut:     mm.TimedOut,
		Score:        int32(mm.Score),
		Episodes:     int32(mm.Episodes),
		FullPlayouts: int32(mm.FullPlayouts),
		IsTreeReset:  mm.IsTreeReset,
	}
}

// Writer stores experiment results as zstd-compressed Parquet files in one
// directory per run.
type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp>.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create experiment directory")
	}
	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	return write(filepath.Join(w.baseDir, "agents.parquet"), configs, "agents_v1")
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	return write(filepath.Join(w.baseDir, "games.parquet"), records, "games_v1")
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	return write(filepath.Join(w.baseDir, "moves.parquet"), records, "moves_v1")
}

func write[T any](path string, rows []T, schema string) error {
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to write %s", filepath.Base(path))
	}
	return errors.Wrapf(os.Rename(tmpPath, path), "failed to finalize %s", filepath.Base(path))
}

// ReadMoveRecords loads a moves file written by WriteMoveRecords.
func ReadMoveRecords(path string) ([]MoveRecord, error) {
	rows, err := parquet.ReadFile[MoveRecord](path)
	return rows, errors.Wrapf(err, "failed to read %s", path)
}

// ReadGameRecords loads a games file written by WriteGameRecords.
func ReadGameRecords(path string) ([]GameRecord, error) {
	rows, err := parquet.ReadFile[GameRecord](path)
	return rows, errors.Wrapf(err, "failed to read %s", path)
}

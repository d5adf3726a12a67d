package curriculum

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
)

// ShardSource loads the records of one monthly shard.
type ShardSource interface {
	LoadShard(ctx context.Context, shard int) ([]domain.CurriculumRecord, error)
}

//go:embed data/*.json
var embeddedShards embed.FS

// shardFile is the on-disk layout of data/month-XX.json.
type shardFile struct {
	Month int                       `json:"month"`
	Name  string                    `json:"name"`
	Days  []domain.CurriculumRecord `json:"days"`
}

// FSSource reads shard files named month-XX.json from a directory of an fs.FS.
type FSSource struct {
	fsys fs.FS
	dir  string
}

var _ ShardSource = (*FSSource)(nil)

// NewEmbeddedSource returns a source backed by the curriculum compiled into the binary.
func NewEmbeddedSource() *FSSource {
	return &FSSource{fsys: embeddedShards, dir: "data"}
}

// NewDirSource returns a source reading shard files from dir on disk.
func NewDirSource(dir string) *FSSource {
	return &FSSource{fsys: os.DirFS(dir), dir: "."}
}

// NewFSSource returns a source reading shard files from dir within fsys.
func NewFSSource(fsys fs.FS, dir string) *FSSource {
	return &FSSource{fsys: fsys, dir: dir}
}

// ShardFileName returns the file name used for shard.
func ShardFileName(shard int) string {
	return fmt.Sprintf("month-%02d.json", shard)
}

// LoadShard implements ShardSource.
func (s *FSSource) LoadShard(ctx context.Context, shard int) ([]domain.CurriculumRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := path.Join(s.dir, ShardFileName(shard))
	raw, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrShardLoad, name, err)
	}

	var file shardFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrShardLoad, name, err)
	}
	if file.Month != 0 && file.Month != shard {
		return nil, fmt.Errorf("%w: %s declares month %d", ErrShardLoad, name, file.Month)
	}
	return file.Days, nil
}

package snapshot

import (
	"embed"
	"encoding/json"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"
)

const (
	ModeReplace = "replace"
	ModeAppend  = "append"

	TierAlways = "always"
	TierDemo   = "demo"
	TierDev    = "dev"
)

var ErrInvalidDataset = errors.New("snapshot: invalid dataset")

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

//go:embed data/*.yaml
var builtin embed.FS

// Dataset is a fixed set of rows for one table.
type Dataset struct {
	Name    string   `yaml:"-"`
	Table   string   `yaml:"table"`
	Mode    string   `yaml:"mode"`
	Tier    string   `yaml:"tier"`
	Demo    bool     `yaml:"demo"`
	Columns []string `yaml:"columns"`
	Rows    [][]any  `yaml:"rows"`
}

// Validate checks identifiers and row shapes before any SQL is built from them.
func (d Dataset) Validate() error {
	if !identifier.MatchString(d.Table) {
		return errors.Wrapf(ErrInvalidDataset, "%s: bad table name %q", d.Name, d.Table)
	}
	switch d.Mode {
	case ModeReplace, ModeAppend:
	default:
		return errors.Wrapf(ErrInvalidDataset, "%s: bad mode %q", d.Name, d.Mode)
	}
	switch d.Tier {
	case TierAlways, TierDemo, TierDev:
	default:
		return errors.Wrapf(ErrInvalidDataset, "%s: bad tier %q", d.Name, d.Tier)
	}
	if len(d.Columns) == 0 {
		return errors.Wrapf(ErrInvalidDataset, "%s: no columns", d.Name)
	}
	seen := make(map[string]bool, len(d.Columns))
	for _, c := range d.Columns {
		if !identifier.MatchString(c) || seen[c] {
			return errors.Wrapf(ErrInvalidDataset, "%s: bad or duplicate column %q", d.Name, c)
		}
		seen[c] = true
	}
	if (d.Demo || d.Mode == ModeAppend) && !seen["id"] {
		return errors.Wrapf(ErrInvalidDataset, "%s: demo and append datasets need an id column", d.Name)
	}
	for i, row := range d.Rows {
		if len(row) != len(d.Columns) {
			return errors.Wrapf(ErrInvalidDataset, "%s: row %d has %d values, want %d", d.Name, i, len(row), len(d.Columns))
		}
	}
	return nil
}

// Records returns the rows keyed by column, with map and list values encoded
// as JSON so they land in json/jsonb columns intact.
func (d Dataset) Records() ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(d.Rows))
	for i, row := range d.Rows {
		rec := make(map[string]any, len(d.Columns))
		for j, col := range d.Columns {
			v, err := normalize(row[j])
			if err != nil {
				return nil, errors.Wrapf(err, "%s: row %d column %s", d.Name, i, col)
			}
			rec[col] = v
		}
		out = append(out, rec)
	}
	return out, nil
}

// IDs returns the id column of every row.
func (d Dataset) IDs() []any {
	idx := -1
	for i, c := range d.Columns {
		if c == "id" {
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]any, 0, len(d.Rows))
	for _, row := range d.Rows {
		out = append(out, row[idx])
	}
	return out
}

func normalize(v any) (any, error) {
	switch v.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	default:
		return v, nil
	}
}

// Parse decodes and validates a dataset document.
func Parse(name string, data []byte) (Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Dataset{}, errors.Wrapf(err, "decode dataset %s", name)
	}
	d.Name = name
	if d.Mode == "" {
		d.Mode = ModeReplace
	}
	if d.Tier == "" {
		d.Tier = TierAlways
	}
	if err := d.Validate(); err != nil {
		return Dataset{}, err
	}
	return d, nil
}

// LoadFS reads every *.yaml dataset under dir, sorted by name.
func LoadFS(fsys fs.FS, dir string) ([]Dataset, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var out []Dataset
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		ds, err := Parse(strings.TrimSuffix(e.Name(), ".yaml"), data)
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Builtin returns the datasets shipped with the binary.
func Builtin() ([]Dataset, error) {
	return LoadFS(builtin, "data")
}

// Lookup finds a dataset by name.
func Lookup(datasets []Dataset, name string) (Dataset, error) {
	for _, d := range datasets {
		if d.Name == name {
			return d, nil
		}
	}
	return Dataset{}, errors.Errorf("snapshot %q not found", name)
}

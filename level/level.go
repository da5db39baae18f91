// Package level loads puzzle levels: the allowed operations, the inbox,
// the goal and an optional starting program.
package level

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/robox/channel"
	"github.com/ezrec/robox/cpu"
	"github.com/ezrec/robox/game"
	"github.com/ezrec/robox/internal"
	"github.com/ezrec/robox/memory"
)

const (
	CURRENT_VERSION = 1 // Level schema version written by this program.
)

// Extensions lists the level file extensions, in search order.
var Extensions = []string{".toml", ".yaml", ".yml"}

// Format returns the level format of path, 'toml' or 'yaml', from its
// extension.
func Format(path string) (format string, ok bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml", true
	case ".yaml", ".yml":
		return "yaml", true
	}
	return
}

// Level is a single puzzle.
type Level struct {
	Version     int      `toml:"version" yaml:"version"`
	Name        string   `toml:"name" yaml:"name"`
	Description string   `toml:"description,omitempty" yaml:"description,omitempty"`
	Allowed     []string `toml:"allowed" yaml:"allowed"`
	Provided    []int    `toml:"provided" yaml:"provided"`
	Needed      []int    `toml:"needed" yaml:"needed"`
	VacantSize  int      `toml:"vacant_size" yaml:"vacant_size"`
	Program     string   `toml:"program,omitempty" yaml:"program,omitempty"` // Assembly source.

	Path string `toml:"-" yaml:"-"` // File the level was loaded from.
}

func (lvl *Level) applyDefaults() {
	if lvl.Version == 0 {
		lvl.Version = CURRENT_VERSION
	}
}

func (lvl *Level) validateVersion() error {
	if lvl.Version > CURRENT_VERSION || lvl.Version < 0 {
		return ErrVersion(lvl.Version)
	}

	return nil
}

// Decode parses a level in the given format, 'toml' or 'yaml'.
func Decode(data []byte, format string) (lvl *Level, err error) {
	lvl = &Level{}

	switch format {
	case "toml":
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(lvl)
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(lvl)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		err = ErrFormat
	}
	if err != nil {
		return nil, err
	}

	lvl.applyDefaults()

	err = lvl.Validate()
	if err != nil {
		return nil, err
	}

	return
}

// Encode writes the level in the given format.
func (lvl *Level) Encode(w io.Writer, format string) (err error) {
	switch format {
	case "toml":
		err = toml.NewEncoder(w).Encode(lvl)
	case "yaml":
		enc := yaml.NewEncoder(w)
		err = enc.Encode(lvl)
		if err == nil {
			err = enc.Close()
		}
	default:
		err = ErrFormat
	}

	return
}

// Load reads a level file, choosing the format by extension.
func Load(path string) (lvl *Level, err error) {
	defer func() {
		if err != nil {
			err = &ErrLevel{Path: path, Err: err}
		}
	}()

	format, ok := Format(path)
	if !ok {
		err = ErrFormat
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	lvl, err = Decode(data, format)
	if err != nil {
		return
	}

	lvl.Path = path

	return
}

// Find loads a level by path, or by name from dir.
func Find(name string, dir string) (lvl *Level, err error) {
	if _, ok := Format(name); ok {
		return Load(name)
	}

	if len(dir) != 0 {
		for _, ext := range Extensions {
			path := filepath.Join(dir, name+ext)
			_, err = os.Stat(path)
			if err == nil {
				return Load(path)
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, &ErrLevel{Path: path, Err: err}
			}
		}
	}

	err = &ErrLevel{Path: name, Err: ErrNotFound}
	return
}

// Validate checks the level itself. The program is checked when the level
// is started.
func (lvl *Level) Validate() (err error) {
	err = lvl.validateVersion()
	if err != nil {
		return
	}

	if len(lvl.Name) == 0 {
		err = ErrNameMissing
		return
	}

	if lvl.VacantSize < 0 {
		err = ErrVacantSize
		return
	}

	_, err = cpu.ParseAllowed(lvl.Allowed)

	return
}

// Defines returns the assembler predefines of this level.
func (lvl *Level) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		memory.Defines(lvl.VacantSize),
		channel.NewQueue(lvl.Provided...).Defines("INBOX"),
		channel.NewQueue(lvl.Needed...).Defines("NEEDED"),
	)
}

// Assemble parses robot assembly with the level's predefines.
// With a nil source, the level's own program is assembled.
func (lvl *Level) Assemble(source io.Reader) (listing *cpu.Program, err error) {
	if source == nil {
		source = strings.NewReader(lvl.Program)
	}

	asm := &cpu.Assembler{}
	for key, value := range lvl.Defines() {
		asm.Predefine(key, value)
	}

	return asm.Parse(source)
}

// Start initializes ses with the level and its own program.
func (lvl *Level) Start(ses *game.Session) (err error) {
	listing, err := lvl.Assemble(nil)
	if err != nil {
		return
	}

	return lvl.StartWith(ses, listing)
}

// StartWith initializes ses with the level and an assembled listing.
func (lvl *Level) StartWith(ses *game.Session, listing *cpu.Program) (err error) {
	err = ses.Initialize(lvl.Allowed, lvl.Provided, lvl.Needed, listing.Commands(), lvl.VacantSize)
	if err != nil {
		return
	}

	ses.Listing = listing

	return
}

// Names lists the level names found in dir.
func Names(dir string) (names []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	seen := map[string]bool{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := Format(entry.Name()); !ok {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	return
}

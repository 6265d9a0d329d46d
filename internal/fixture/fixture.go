package fixture

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/roach88/circles/internal/catalog"
	"github.com/roach88/circles/internal/circle"
	"github.com/roach88/circles/internal/profile"
	"github.com/roach88/circles/internal/trust"
)

//go:embed schema.cue
var schemaSrc string

// Error codes reported by LoadError.
const (
	ErrCodeNotFound = "E_NOT_FOUND"
	ErrCodeRead     = "E_READ"
	ErrCodeParse    = "E_PARSE"
	ErrCodeSchema   = "E_SCHEMA"
)

// LoadError describes why a fixture could not be loaded.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Profile is the optional profile section of a fixture.
type Profile struct {
	Address string `yaml:"address"`
}

// Fixture is a decoded document.
type Fixture struct {
	Circles []circle.Record `yaml:"circles"`
	Trust   *trust.Record   `yaml:"trust,omitempty"`
	Profile *Profile        `yaml:"profile,omitempty"`
}

// Load reads, validates and decodes the fixture at path.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("fixture not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("reading fixture: %v", err)}
	}

	f, err := Parse(path, data)
	if err != nil {
		return nil, err
	}

	slog.Debug("fixture loaded", "path", path, "circles", len(f.Circles), "trust", f.Trust != nil)
	return f, nil
}

// Parse validates and decodes a fixture document. filename is used only in
// error positions.
func Parse(filename string, data []byte) (*Fixture, error) {
	if err := Validate(filename, data); err != nil {
		return nil, err
	}

	var f Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("decoding YAML: %v", err)}
	}
	return &f, nil
}

// Validate checks data against the #Fixture schema.
func Validate(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling fixture schema: %w", err)
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return cueLoadError(ErrCodeParse, err)
	}

	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return cueLoadError(ErrCodeParse, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Fixture")).Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cueLoadError(ErrCodeSchema, err)
	}
	return nil
}

// cueLoadError converts a CUE error into a LoadError carrying the first
// reported position.
func cueLoadError(code string, err error) *LoadError {
	le := &LoadError{Code: code, Message: cueerrors.Details(err, nil)}
	for _, e := range cueerrors.Errors(err) {
		if pos := e.Position(); pos.IsValid() {
			le.Pos = pos
			le.Message = e.Error()
			break
		}
	}
	return le
}

// Populate pushes the fixture into the owned state objects as a full
// replacement. Any of the targets may be nil.
func (f *Fixture) Populate(c *catalog.Catalog, p *trust.Progression, l *profile.Ledger) {
	if c != nil {
		c.Replace(f.Circles)
	}
	if p != nil && f.Trust != nil {
		p.Load(*f.Trust)
	}
	if l != nil {
		if f.Profile != nil {
			l.SetAddress(f.Profile.Address)
		}
		if p != nil {
			l.SetTier(p.Tier())
		}
	}
}

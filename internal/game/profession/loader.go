package profession

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.yaml
var content embed.FS

type professionFile struct {
	ID          ID            `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Icon        string        `yaml:"icon"`
	Titles      Titles        `yaml:"titles"`
	Abilities   []abilityFile `yaml:"abilities"`
}

type abilityFile struct {
	Level       int                    `yaml:"level"`
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Modifiers   map[string]interface{} `yaml:"modifiers"`
}

// LoadDefault returns the catalog embedded in the binary.
//
// Postcondition: Returns a Catalog holding all six professions, or an error
// if the embedded content is malformed.
func LoadDefault() (*Catalog, error) {
	sub, err := fs.Sub(content, "content")
	if err != nil {
		return nil, fmt.Errorf("opening embedded professions: %w", err)
	}
	c, err := LoadFS(sub)
	if err != nil {
		return nil, err
	}
	if c.Len() != len(declared) {
		return nil, fmt.Errorf("embedded professions: want %d, got %d", len(declared), c.Len())
	}
	return c, nil
}

// LoadDirectory reads every *.yaml file in dir as one profession.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a Catalog, or an error if any file fails to parse or validate.
func LoadDirectory(dir string) (*Catalog, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads every *.yaml file at the root of fsys as one profession.
// Unknown fields and unknown modifier keys are rejected.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading profession dir: %w", err)
	}
	var profs []*Profession
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", e.Name(), err)
		}
		p, err := parseProfession(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path.Base(e.Name()), err)
		}
		profs = append(profs, p)
	}
	return NewCatalog(profs...)
}

func parseProfession(data []byte) (*Profession, error) {
	var pf professionFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil {
		return nil, err
	}
	p := &Profession{
		ID:          pf.ID,
		Name:        pf.Name,
		Description: pf.Description,
		Icon:        pf.Icon,
		Titles:      pf.Titles,
		Abilities:   make([]Ability, 0, len(pf.Abilities)),
	}
	for _, af := range pf.Abilities {
		mods := make(map[Key]Value, len(af.Modifiers))
		for raw, v := range af.Modifiers {
			val, err := ParseValue(Key(raw), v)
			if err != nil {
				return nil, fmt.Errorf("ability %q: %w", af.Name, err)
			}
			mods[Key(raw)] = val
		}
		p.Abilities = append(p.Abilities, Ability{
			UnlockLevel: af.Level,
			Name:        af.Name,
			Description: af.Description,
			Modifiers:   mods,
		})
	}
	return p, nil
}

package corpus

import (
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/openherb/herbarium/pkg/errors"
)

// File is one corpus document together with where it came from. Doc is
// nil when the file failed to parse; Err then carries the ParseError.
type File struct {
	Path string // relative to the corpus root
	Role Role
	Doc  Document
	Err  error
}

// Slug returns the file's identifier slug (base name without .json).
func (f *File) Slug() string {
	base := path.Base(f.Path)
	return strings.TrimSuffix(base, ".json")
}

// Corpus is the loaded knowledge base: every parsed document plus the
// lookup tables the validator, linker and index builder work against.
type Corpus struct {
	Root string

	Plants   map[string]*Plant   // by @id (plant/<slug>)
	Profiles map[string]*Profile // by @id across all systems
	Concepts map[string]*Concept // arena across all reference schemes
	Schemes  []*ConceptScheme

	ProfilesBySystem map[Role][]*Profile

	Files    []*File
	Failures []*File // parse failures, isolated from the rest of the batch
}

type loadOptions struct {
	roles  []Role
	filter string
}

// Option configures corpus loading.
type Option func(*loadOptions)

// WithRoles restricts loading to the given roles.
func WithRoles(roles ...Role) Option {
	return func(o *loadOptions) { o.roles = roles }
}

// WithFilter restricts loading to files whose slug or relative path
// matches the doublestar glob, e.g. "gins*" or "plants/**".
func WithFilter(glob string) Option {
	return func(o *loadOptions) { o.filter = glob }
}

// Load walks the corpus tree under root and parses every .json document
// of the requested roles. A file that fails to parse is recorded under
// Failures and does not abort the batch.
func Load(root string, opts ...Option) (*Corpus, error) {
	options := &loadOptions{roles: Roles}
	for _, opt := range opts {
		opt(options)
	}

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, errors.WrapIO("read", root, errors.New("corpus root is not a directory"))
	}

	c := &Corpus{
		Root:             root,
		Plants:           make(map[string]*Plant),
		Profiles:         make(map[string]*Profile),
		Concepts:         make(map[string]*Concept),
		ProfilesBySystem: make(map[Role][]*Profile),
	}

	fsys := os.DirFS(root)
	for _, role := range options.roles {
		if err := c.loadRole(fsys, role, options); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// loadRole walks one role directory. A missing directory is not an
// error; corpora may carry only a subset of roles.
func (c *Corpus) loadRole(fsys fs.FS, role Role, options *loadOptions) error {
	err := fs.WalkDir(fsys, role.Dir(), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".json") {
			return nil
		}
		if !matchesFilter(options.filter, p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			c.Failures = append(c.Failures, &File{Path: p, Role: role, Err: errors.WrapIO("read", p, err)})
			return nil
		}

		doc, err := Parse(role, data)
		file := &File{Path: p, Role: role, Doc: doc}
		if err != nil {
			file.Doc = nil
			file.Err = errors.WrapParse("json", p, err)
			c.Failures = append(c.Failures, file)
			return nil
		}

		c.Files = append(c.Files, file)
		c.register(doc)
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("walk", role.Dir(), err)
	}
	return nil
}

// register adds a parsed document to the lookup tables.
func (c *Corpus) register(doc Document) {
	switch d := doc.(type) {
	case *Plant:
		if d.ID != "" {
			c.Plants[d.ID] = d
		}
	case *Profile:
		if d.ID != "" {
			c.Profiles[d.ID] = d
		}
		c.ProfilesBySystem[d.System] = append(c.ProfilesBySystem[d.System], d)
	case *ConceptScheme:
		c.Schemes = append(c.Schemes, d)
		for _, concept := range d.Concepts {
			if concept.ID != "" {
				c.Concepts[concept.ID] = concept
			}
		}
	}
}

// matchesFilter reports whether the relative path or its slug matches
// the glob. An empty glob matches everything.
func matchesFilter(glob, p string) bool {
	if glob == "" {
		return true
	}
	slug := strings.TrimSuffix(path.Base(p), ".json")
	if ok, _ := doublestar.Match(glob, slug); ok {
		return true
	}
	ok, _ := doublestar.Match(glob, p)
	return ok
}

// Plant returns the plant with the given IRI.
func (c *Corpus) Plant(id string) (*Plant, bool) {
	p, ok := c.Plants[id]
	return p, ok
}

// Concept returns the reference concept with the given IRI.
func (c *Corpus) Concept(id string) (*Concept, bool) {
	concept, ok := c.Concepts[id]
	return concept, ok
}

// DocumentCount returns the number of successfully parsed documents.
func (c *Corpus) DocumentCount() int {
	return len(c.Files)
}

package corpus

// Role identifies the kind of document a corpus file holds.
type Role string

// Document roles recognized in the corpus tree.
const (
	RolePlant     Role = "plant"
	RoleTCM       Role = "tcm"
	RoleAyurveda  Role = "ayurveda"
	RoleWestern   Role = "western"
	RoleReference Role = "reference"
)

// Roles lists every corpus role in load order.
var Roles = []Role{RolePlant, RoleTCM, RoleAyurveda, RoleWestern, RoleReference}

// SystemRoles lists the medicine-system profile roles.
var SystemRoles = []Role{RoleTCM, RoleAyurveda, RoleWestern}

// Dir returns the directory name holding documents of this role,
// relative to the corpus root.
func (r Role) Dir() string {
	switch r {
	case RolePlant:
		return "plants"
	case RoleReference:
		return "reference"
	default:
		return string(r)
	}
}

// Valid reports whether the role is one of the recognized corpus roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// IsSystem reports whether the role is a medicine-system profile role.
func (r Role) IsSystem() bool {
	return r == RoleTCM || r == RoleAyurveda || r == RoleWestern
}

// RecognizedPrefixes are the relative IRI prefixes used by the corpus
// addressing scheme. Reference values outside this set are not treated as
// errors at parse time; resolution reports them separately.
var RecognizedPrefixes = []string{
	"plant/", "tcm/", "ayurveda/", "western/",
	"category/", "nature/", "flavor/", "meridian/",
	"dosha/", "rasa/", "guna/", "virya/", "vipaka/",
	"compound/", "scheme/",
}

// RecognizedIRI reports whether id starts with a recognized corpus prefix.
func RecognizedIRI(id string) bool {
	for _, p := range RecognizedPrefixes {
		if len(id) > len(p) && id[:len(p)] == p {
			return true
		}
	}
	return false
}

// Slug returns the final path segment of a corpus IRI, e.g.
// "plant/ginseng" -> "ginseng". IRIs without a slash return unchanged.
func Slug(id string) string {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '/' {
			return id[i+1:]
		}
	}
	return id
}

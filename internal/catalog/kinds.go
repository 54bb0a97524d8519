package catalog

import "github.com/go-faster/errors"


// Kind names a per-financer reference catalog. The value is also its table name.
type Kind string

const (
	ContractTypes Kind = "contract_types"
	Departments   Kind = "departments"
	JobLevels     Kind = "job_levels"
	JobTitles     Kind = "job_titles"
	Sites         Kind = "sites"
	Tags          Kind = "tags"
	WorkModes     Kind = "work_modes"
)

// AllKinds lists catalogs in seeding order.
var AllKinds = []Kind{Departments, Sites, ContractTypes, Tags, JobTitles, JobLevels, WorkModes}

var defaults = map[Kind][]string{
	ContractTypes: {
		"CDI",
		"CDD",
		"Interim",
		"Apprenticeship",
		"Internship",
		"Freelance",
	},
	Departments: {
		"Human Resources",
		"Finance",
		"Sales",
		"Marketing",
		"Engineering",
		"Operations",
		"Customer Success",
		"Legal",
	},
	JobLevels: {
		"Intern",
		"Junior",
		"Intermediate",
		"Senior",
		"Lead",
		"Manager",
		"Director",
		"Executive",
	},
	JobTitles: {
		"HR Business Partner",
		"Payroll Specialist",
		"Accountant",
		"Account Executive",
		"Marketing Manager",
		"Software Engineer",
		"Product Manager",
		"Office Manager",
		"Customer Success Manager",
	},
	Sites: {
		"Paris HQ",
		"Lyon",
		"Brussels",
		"Lisbon",
		"Remote",
	},
	Tags: {
		"Onboarding",
		"Wellbeing",
		"Benefits",
		"Training",
		"Events",
		"Internal news",
	},
	WorkModes: {
		"On site",
		"Hybrid",
		"Full remote",
	},
}

// Valid reports whether k is a known catalog.
func (k Kind) Valid() bool {
	_, ok := defaults[k]
	return ok
}

// Table returns the storage table for k, or an error for unknown kinds so the
// name is never interpolated unchecked.
func (k Kind) Table() (string, error) {
	if !k.Valid() {
		return "", errors.Errorf("%w: unknown catalog %q", ErrInvalidKind, string(k))
	}
	return string(k), nil
}

// Defaults returns a copy of the static entries for k.
func Defaults(k Kind) []string {
	return append([]string(nil), defaults[k]...)
}

// ParseKind maps a name such as "contract_types" to its Kind.
func ParseKind(name string) (Kind, error) {
	k := Kind(name)
	if !k.Valid() {
		return "", errors.Errorf("%w: unknown catalog %q", ErrInvalidKind, name)
	}
	return k, nil
}

package fixtures

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"upengage.io/seeder/internal/auth"
	"upengage.io/seeder/internal/ids"
	"upengage.io/seeder/internal/tenancy"
)

var locales = []string{"fr-FR", "fr-FR", "fr-BE", "nl-BE", "en-GB", "pt-PT"}

// roleMix is cycled through when assigning pivot roles, so one in twenty
// users is a financer super admin and two are financer admins.
var roleMix = []string{
	auth.RoleFinancerSuperAdmin,
	auth.RoleFinancerAdmin, auth.RoleFinancerAdmin,
	auth.RoleBeneficiary, auth.RoleBeneficiary, auth.RoleBeneficiary, auth.RoleBeneficiary, auth.RoleBeneficiary,
	auth.RoleBeneficiary, auth.RoleBeneficiary, auth.RoleBeneficiary, auth.RoleBeneficiary, auth.RoleBeneficiary,
	auth.RoleBeneficiary, auth.RoleBeneficiary, auth.RoleBeneficiary, auth.RoleBeneficiary, auth.RoleBeneficiary,
	auth.RoleBeneficiary, auth.RoleBeneficiary,
}

// Factory builds realistic tenants, users and pivots. The same seed yields
// the same names.
type Factory struct {
	faker  *gofakeit.Faker
	teamID string
	newID  ids.Generator
	seq    int
}

func NewFactory(seed uint64, teamID string) *Factory {
	return &Factory{faker: gofakeit.New(seed), teamID: teamID, newID: ids.NewUUID}
}

func (f *Factory) Financer(divisionID string) tenancy.Financer {
	return tenancy.Financer{
		ID:         f.newID(),
		Name:       f.faker.Company(),
		DivisionID: divisionID,
		Active:     true,
	}
}

// User returns a user whose email is unique within the factory.
func (f *Factory) User(domain string) tenancy.User {
	f.seq++
	first := f.faker.FirstName()
	last := f.faker.LastName()
	local := strings.ToLower(strings.NewReplacer(" ", "", "'", "").Replace(first + "." + last))
	return tenancy.User{
		ID:        f.newID(),
		Email:     fmt.Sprintf("%s.%d@%s", local, f.seq, domain),
		FirstName: first,
		LastName:  last,
		Locale:    locales[f.seq%len(locales)],
		TeamID:    f.teamID,
	}
}

// Relationship links user to financer. Every tenth pivot is inactive.
func (f *Factory) Relationship(user tenancy.User, financer tenancy.Financer, n int) tenancy.Relationship {
	return tenancy.Relationship{
		ID:         f.newID(),
		UserID:     user.ID,
		FinancerID: financer.ID,
		Active:     n%10 != 9,
		Role:       roleMix[n%len(roleMix)],
		From:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n%365),
	}
}

func domainFor(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "example.test"
	}
	return b.String() + ".test"
}

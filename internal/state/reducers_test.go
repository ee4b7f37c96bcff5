package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathenaangeles/socialite/internal/models"
)

func TestReduceUser(t *testing.T) {
	user := &models.User{ID: "u1", Email: "a@x.com"}

	t.Run("pending sets loading and clears error", func(t *testing.T) {
		cache := UserCache{Error: "old failure"}
		next := reduceUser(cache, userAction{op: opUserLogin, phase: Pending})
		assert.True(t, next.Loading)
		assert.Empty(t, next.Error)
	})

	t.Run("fulfilled login sets user", func(t *testing.T) {
		next := reduceUser(UserCache{Loading: true}, userAction{op: opUserLogin, phase: Fulfilled, user: user})
		assert.False(t, next.Loading)
		assert.Equal(t, user, next.User)
	})

	t.Run("rejected keeps user and records error", func(t *testing.T) {
		cache := UserCache{User: user, Loading: true}
		next := reduceUser(cache, userAction{op: opUserGetProfile, phase: Rejected, err: "boom"})
		assert.False(t, next.Loading)
		assert.Equal(t, "boom", next.Error)
		assert.Equal(t, user, next.User)
	})

	t.Run("fulfilled logout clears user", func(t *testing.T) {
		next := reduceUser(UserCache{User: user}, userAction{op: opUserLogout, phase: Fulfilled})
		assert.Nil(t, next.User)
	})

	t.Run("fulfilled delete account clears user", func(t *testing.T) {
		next := reduceUser(UserCache{User: user}, userAction{op: opUserDeleteAccount, phase: Fulfilled})
		assert.Nil(t, next.User)
	})
}

func orgFixture() OrganizationCache {
	return OrganizationCache{
		Organizations: []models.Organization{
			{ID: "o1", Name: "Acme"},
			{ID: "o2", Name: "Globex"},
			{ID: "o3", Name: "Initech"},
		},
	}
}

func TestReduceOrganization(t *testing.T) {
	t.Run("create appends and sets current", func(t *testing.T) {
		org := &models.Organization{ID: "o4", Name: "Umbrella"}
		next := reduceOrganization(orgFixture(), orgAction{op: opOrgCreate, phase: Fulfilled, org: org})
		require.Len(t, next.Organizations, 4)
		assert.Equal(t, "Umbrella", next.Organizations[3].Name)
		assert.Equal(t, org, next.Organization)
	})

	t.Run("get sets current without touching the list", func(t *testing.T) {
		org := &models.Organization{ID: "o9", Name: "Offlist"}
		next := reduceOrganization(orgFixture(), orgAction{op: opOrgGet, phase: Fulfilled, org: org})
		assert.Len(t, next.Organizations, 3)
		assert.Equal(t, org, next.Organization)
	})

	t.Run("update replaces matching entry preserving order", func(t *testing.T) {
		org := &models.Organization{ID: "o2", Name: "Globex Corp"}
		next := reduceOrganization(orgFixture(), orgAction{op: opOrgUpdate, phase: Fulfilled, org: org})
		require.Len(t, next.Organizations, 3)
		assert.Equal(t, []string{"o1", "o2", "o3"}, []string{
			next.Organizations[0].ID, next.Organizations[1].ID, next.Organizations[2].ID,
		})
		assert.Equal(t, "Globex Corp", next.Organizations[1].Name)
		assert.Equal(t, "Acme", next.Organizations[0].Name)
	})

	t.Run("update with absent id leaves the list unchanged", func(t *testing.T) {
		org := &models.Organization{ID: "missing", Name: "Ghost"}
		next := reduceOrganization(orgFixture(), orgAction{op: opOrgUpdate, phase: Fulfilled, org: org})
		assert.Equal(t, orgFixture().Organizations, next.Organizations)
		assert.Equal(t, org, next.Organization)
	})

	t.Run("delete removes exactly one entry", func(t *testing.T) {
		next := reduceOrganization(orgFixture(), orgAction{op: opOrgDelete, phase: Fulfilled, id: "o2"})
		require.Len(t, next.Organizations, 2)
		assert.Equal(t, "o1", next.Organizations[0].ID)
		assert.Equal(t, "o3", next.Organizations[1].ID)
	})

	t.Run("delete with absent id is a no-op on the list", func(t *testing.T) {
		next := reduceOrganization(orgFixture(), orgAction{op: opOrgDelete, phase: Fulfilled, id: "missing"})
		assert.Len(t, next.Organizations, 3)
	})

	t.Run("delete does not clear current", func(t *testing.T) {
		cache := orgFixture()
		cache.Organization = &models.Organization{ID: "o2"}
		next := reduceOrganization(cache, orgAction{op: opOrgDelete, phase: Fulfilled, id: "o2"})
		assert.NotNil(t, next.Organization)
	})

	t.Run("members update mirrors update", func(t *testing.T) {
		org := &models.Organization{ID: "o1", Name: "Acme", Members: []models.Member{{ID: "u2", Email: "b@x.com"}}}
		next := reduceOrganization(orgFixture(), orgAction{op: opOrgAddMembers, phase: Fulfilled, org: org})
		assert.True(t, next.Organizations[0].HasMember("b@x.com"))
		assert.Equal(t, org, next.Organization)
	})

	t.Run("list replaces wholesale", func(t *testing.T) {
		next := reduceOrganization(orgFixture(), orgAction{
			op:    opOrgList,
			phase: Fulfilled,
			orgs:  []models.Organization{{ID: "o7"}},
		})
		require.Len(t, next.Organizations, 1)
		assert.Equal(t, "o7", next.Organizations[0].ID)
	})

	t.Run("rejected leaves list and current untouched", func(t *testing.T) {
		cache := orgFixture()
		cache.Organization = &models.Organization{ID: "o1"}
		next := reduceOrganization(cache, orgAction{op: opOrgList, phase: Rejected, err: "down"})
		assert.Equal(t, cache.Organizations, next.Organizations)
		assert.Equal(t, cache.Organization, next.Organization)
		assert.Equal(t, "down", next.Error)
	})

	t.Run("reducer does not mutate its input", func(t *testing.T) {
		cache := orgFixture()
		org := &models.Organization{ID: "o2", Name: "Mutated"}
		_ = reduceOrganization(cache, orgAction{op: opOrgUpdate, phase: Fulfilled, org: org})
		assert.Equal(t, "Globex", cache.Organizations[1].Name)
	})
}

func TestReduceProduct(t *testing.T) {
	fixture := ProductCache{Products: []models.Product{{ID: "p1", Name: "Sneaker"}, {ID: "p2", Name: "Boot"}}}

	t.Run("create appends", func(t *testing.T) {
		p := &models.Product{ID: "p3", Name: "Sandals"}
		next := reduceProduct(fixture, productAction{op: opProductCreate, phase: Fulfilled, product: p})
		require.Len(t, next.Products, 3)
		assert.Equal(t, p, next.Product)
	})

	t.Run("update replaces in place", func(t *testing.T) {
		p := &models.Product{ID: "p1", Name: "Sneaker v2", Price: 89}
		next := reduceProduct(fixture, productAction{op: opProductUpdate, phase: Fulfilled, product: p})
		assert.Equal(t, "Sneaker v2", next.Products[0].Name)
		assert.Equal(t, "Boot", next.Products[1].Name)
	})

	t.Run("delete removes one", func(t *testing.T) {
		next := reduceProduct(fixture, productAction{op: opProductDelete, phase: Fulfilled, id: "p2"})
		require.Len(t, next.Products, 1)
		assert.Equal(t, "p1", next.Products[0].ID)
	})

	t.Run("rejected preserves data", func(t *testing.T) {
		next := reduceProduct(fixture, productAction{op: opProductGet, phase: Rejected, err: "not found"})
		assert.Equal(t, fixture.Products, next.Products)
		assert.Equal(t, "not found", next.Error)
	})
}

func TestReduceContent(t *testing.T) {
	fixture := ContentCache{Contents: []models.Content{{ID: "c1", Title: "One"}, {ID: "c2", Title: "Two"}}}

	t.Run("create appends and sets current", func(t *testing.T) {
		c := &models.Content{ID: "c3", Title: "Three"}
		next := reduceContent(fixture, contentAction{op: opContentCreate, phase: Fulfilled, content: c})
		require.Len(t, next.Contents, 3)
		assert.Equal(t, c, next.Content)
	})

	t.Run("list replaces wholesale", func(t *testing.T) {
		next := reduceContent(fixture, contentAction{op: opContentList, phase: Fulfilled, contents: nil})
		assert.Empty(t, next.Contents)
	})

	t.Run("delete keeps current", func(t *testing.T) {
		cache := fixture
		cache.Content = &models.Content{ID: "c1"}
		next := reduceContent(cache, contentAction{op: opContentDelete, phase: Fulfilled, id: "c1"})
		require.Len(t, next.Contents, 1)
		assert.NotNil(t, next.Content)
	})
}

package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func subject(role Role, banned bool) Subject {
	return Subject{Authenticated: true, Role: role, Banned: banned}
}

func TestAuthorize(t *testing.T) {
	testcases := []struct {
		name    string
		subject Subject
		action  Action
		allowed bool
	}{
		{"anonymous views catalog", Anonymous(), ViewCatalog, true},
		{"banned user views catalog", subject(RegularUser, true), ViewCatalog, true},
		{"anonymous adds to cart", Anonymous(), AddToCart, false},
		{"user adds to cart", subject(RegularUser, false), AddToCart, true},
		{"banned user adds to cart", subject(RegularUser, true), AddToCart, false},
		{"banned user checks out", subject(RegularUser, true), Checkout, false},
		{"user adds product", subject(RegularUser, false), AddProduct, false},
		{"junior admin adds product", subject(JuniorAdmin, false), AddProduct, true},
		{"banned junior admin adds product", subject(JuniorAdmin, true), AddProduct, false},
		{"super admin adds product", subject(SuperAdmin, false), AddProduct, true},
		{"junior admin deletes product", subject(JuniorAdmin, false), DeleteProduct, false},
		{"super admin deletes product", subject(SuperAdmin, false), DeleteProduct, true},
		{"junior admin changes theme", subject(JuniorAdmin, false), ChangeTheme, false},
		{"user changes theme", subject(RegularUser, false), ChangeTheme, false},
		{"super admin changes theme", subject(SuperAdmin, false), ChangeTheme, true},
		{"junior admin manages accounts", subject(JuniorAdmin, false), ManageAccounts, false},
		{"super admin manages accounts", subject(SuperAdmin, false), ManageAccounts, true},
		{"user claims admin", subject(RegularUser, false), ClaimJuniorAdmin, true},
		{"banned user claims admin", subject(RegularUser, true), ClaimJuniorAdmin, false},
		{"junior admin claims admin", subject(JuniorAdmin, false), ClaimJuniorAdmin, false},
		{"anonymous claims admin", Anonymous(), ClaimJuniorAdmin, false},
		{"anonymous support chat", Anonymous(), UseSupportChat, true},
		{"user site manager", subject(RegularUser, false), UseSiteManager, false},
		{"junior admin site manager", subject(JuniorAdmin, false), UseSiteManager, true},
		{"banned user updates profile", subject(RegularUser, true), UpdateProfile, true},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			err := Authorize(tc.subject, tc.action)

			// assert
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAuthorize_ErrorKinds(t *testing.T) {
	t.Run("anonymous subject gets not authenticated", func(t *testing.T) {
		err := Authorize(Anonymous(), Checkout)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})
	t.Run("banned subject gets banned", func(t *testing.T) {
		err := Authorize(subject(JuniorAdmin, true), AddProduct)
		assert.ErrorIs(t, err, ErrBanned)
	})
	t.Run("insufficient role gets authorization error", func(t *testing.T) {
		err := Authorize(subject(JuniorAdmin, false), DeleteProduct)
		var authzErr *AuthorizationError
		assert.True(t, errors.As(err, &authzErr))
		assert.Equal(t, DeleteProduct, authzErr.Action)
		assert.Equal(t, "role 'admin' may not delete product", authzErr.Error())
	})
	t.Run("unknown action is denied", func(t *testing.T) {
		err := Authorize(subject(SuperAdmin, false), Action(999))
		assert.Error(t, err)
	})
}

func TestAuthorize_ThemeRejectedForEveryNonSuperAdminRole(t *testing.T) {
	for _, role := range []Role{RegularUser, JuniorAdmin} {
		for _, banned := range []bool{false, true} {
			assert.False(t, Can(subject(role, banned), ChangeTheme), role.ToString())
		}
	}
}

func TestCapabilities(t *testing.T) {
	caps := Capabilities(subject(JuniorAdmin, false))
	assert.Contains(t, caps, "add product")
	assert.Contains(t, caps, "use site manager")
	assert.NotContains(t, caps, "delete product")
	assert.NotContains(t, caps, "manage accounts")
}

func TestResolveRole(t *testing.T) {
	junior := JuniorAdmin
	super := SuperAdmin
	testcases := []struct {
		name      string
		email     string
		persisted *Role
		expected  Role
	}{
		{"super admin email wins over persisted role", " Boss@Shop.test ", &junior, SuperAdmin},
		{"persisted role is restored", "a@shop.test", &junior, JuniorAdmin},
		{"no persisted role defaults to user", "a@shop.test", nil, RegularUser},
		{"persisted super admin on other email is ignored", "a@shop.test", &super, RegularUser},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResolveRole(tc.email, "boss@shop.test", tc.persisted))
		})
	}
	t.Run("empty super admin email never matches", func(t *testing.T) {
		assert.Equal(t, RegularUser, ResolveRole("", "", nil))
	})
}

func TestParseRole(t *testing.T) {
	for _, role := range []Role{RegularUser, JuniorAdmin, SuperAdmin} {
		parsed, err := ParseRole(role.ToString())
		assert.NoError(t, err)
		assert.Equal(t, role, parsed)
	}
	_, err := ParseRole("root")
	assert.Error(t, err)
}

package access

import (
	"errors"
	"fmt"
)

type Action int

const (
	ViewCatalog Action = iota
	AddToCart
	Checkout
	AddProduct
	DeleteProduct
	ChangeTheme
	ManageAccounts
	ClaimJuniorAdmin
	UseSupportChat
	UseSiteManager
	UpdateProfile
)

var actionNames = map[Action]string{
	ViewCatalog:      "view catalog",
	AddToCart:        "add to cart",
	Checkout:         "checkout",
	AddProduct:       "add product",
	DeleteProduct:    "delete product",
	ChangeTheme:      "change theme",
	ManageAccounts:   "manage accounts",
	ClaimJuniorAdmin: "claim admin rights",
	UseSupportChat:   "use support chat",
	UseSiteManager:   "use site manager",
	UpdateProfile:    "update profile",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

var (
	ErrNotAuthenticated = errors.New("authentication required")
	ErrBanned           = errors.New("account is banned")
)

type AuthorizationError struct {
	Action Action
	Role   Role
	Reason string
}

func (e *AuthorizationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("role '%s' may not %s", e.Role.ToString(), e.Action)
}

// Subject is the snapshot of a session that gates are evaluated against. It
// is built from the current account record on every check.
type Subject struct {
	Authenticated bool
	Role          Role
	Banned        bool
}

func Anonymous() Subject {
	return Subject{Role: RegularUser}
}

type rule struct {
	requireAuth  bool
	allowBanned  bool
	allowedRoles []Role
}

var everyone = []Role{RegularUser, JuniorAdmin, SuperAdmin}

var rules = map[Action]rule{
	ViewCatalog:      {allowBanned: true, allowedRoles: everyone},
	UseSupportChat:   {allowBanned: true, allowedRoles: everyone},
	AddToCart:        {requireAuth: true, allowedRoles: everyone},
	Checkout:         {requireAuth: true, allowedRoles: everyone},
	UpdateProfile:    {requireAuth: true, allowBanned: true, allowedRoles: everyone},
	AddProduct:       {requireAuth: true, allowedRoles: []Role{JuniorAdmin, SuperAdmin}},
	UseSiteManager:   {requireAuth: true, allowedRoles: []Role{JuniorAdmin, SuperAdmin}},
	DeleteProduct:    {requireAuth: true, allowedRoles: []Role{SuperAdmin}},
	ChangeTheme:      {requireAuth: true, allowBanned: true, allowedRoles: []Role{SuperAdmin}},
	ManageAccounts:   {requireAuth: true, allowBanned: true, allowedRoles: []Role{SuperAdmin}},
	ClaimJuniorAdmin: {requireAuth: true, allowedRoles: []Role{RegularUser}},
}

// Authorize reports whether s may perform a. Denials are returned as
// ErrNotAuthenticated, ErrBanned or *AuthorizationError.
func Authorize(s Subject, a Action) error {
	r, ok := rules[a]
	if !ok {
		return &AuthorizationError{Action: a, Role: s.Role}
	}
	if r.requireAuth && !s.Authenticated {
		return ErrNotAuthenticated
	}
	if s.Banned && !r.allowBanned {
		return ErrBanned
	}
	for _, role := range r.allowedRoles {
		if role == s.Role {
			return nil
		}
	}
	return &AuthorizationError{Action: a, Role: s.Role}
}

func Can(s Subject, a Action) bool {
	return Authorize(s, a) == nil
}

// Capabilities lists every action s is currently allowed to perform.
func Capabilities(s Subject) []string {
	caps := make([]string, 0, len(rules))
	for a := ViewCatalog; a <= UpdateProfile; a++ {
		if Can(s, a) {
			caps = append(caps, a.String())
		}
	}
	return caps
}

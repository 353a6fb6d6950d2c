// Package policy centralizes per-resource, per-action authorization and
// query scoping. Handlers ask Decide once per request and pass the resulting
// scope into the repository query, so rows outside an identity's scope are
// absent from results rather than filtered after the fact.
package policy

// Kind is the closed set of identity variants.
type Kind int

const (
	Anonymous Kind = iota
	Authenticated
	Staff
)

// Identity is the verified caller of a request. The zero value is anonymous.
type Identity struct {
	Kind   Kind
	UserID int64
}

func Anon() Identity { return Identity{} }

func User(uid int64) Identity { return Identity{Kind: Authenticated, UserID: uid} }

func Admin(uid int64) Identity { return Identity{Kind: Staff, UserID: uid} }

// IsAuthenticated reports whether the identity carries a verified user id.
// Staff implies authenticated.
func (i Identity) IsAuthenticated() bool { return i.Kind != Anonymous }

// IsStaff reports whether the identity has the staff role.
func (i Identity) IsStaff() bool { return i.Kind == Staff }

type Resource int

const (
	ContactMessages Resource = iota
	Services
	TeamMembers
	Jobs
	Applications
	Profiles
	Company
	Users
)

type Action int

const (
	List Action = iota
	Read
	Create
	Update
	Delete
	UpdateStatus
)

// Decision is the outcome of a policy check. When Allowed, the scope fields
// narrow what the store query may return: ActiveOnly restricts list/read to
// active rows, OwnerID restricts to rows owned by that user, and ForceOwner
// means a create must be linked to the caller regardless of the payload.
type Decision struct {
	Allowed    bool
	ActiveOnly bool
	OwnerID    *int64
	ForceOwner bool
}

func deny() Decision  { return Decision{} }
func allow() Decision { return Decision{Allowed: true} }

func allowActive() Decision { return Decision{Allowed: true, ActiveOnly: true} }

func allowOwn(uid int64) Decision { return Decision{Allowed: true, OwnerID: &uid} }

// Decide evaluates the access table for a (resource, action, identity)
// triple. It is pure: no request or store state is consulted.
func Decide(res Resource, act Action, id Identity) Decision {
	if id.IsStaff() {
		// Staff may do everything, unscoped.
		return allow()
	}

	switch res {
	case ContactMessages:
		if act == Create {
			return allow()
		}
		return deny()

	case Services:
		if act == List || act == Read {
			return allow()
		}
		return deny()

	case TeamMembers, Jobs:
		if act == List || act == Read {
			return allowActive()
		}
		return deny()

	case Applications:
		switch act {
		case Create:
			d := allow()
			if id.IsAuthenticated() {
				// submissions by a signed-in user are linked to them;
				// linkage is fixed at creation time
				d.ForceOwner = true
			}
			return d
		case List, Read:
			if id.IsAuthenticated() {
				return allowOwn(id.UserID)
			}
			return deny()
		default:
			return deny()
		}

	case Profiles:
		if !id.IsAuthenticated() {
			return deny()
		}
		switch act {
		case Create:
			d := allowOwn(id.UserID)
			d.ForceOwner = true
			return d
		case List, Read, Update:
			return allowOwn(id.UserID)
		default:
			return deny()
		}

	case Company:
		if act == List || act == Read {
			return allow()
		}
		return deny()

	case Users:
		return deny()
	}

	return deny()
}

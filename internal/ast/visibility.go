package ast

// Visibility controls whether an item is reachable from outside the module
// that declares it (§4.5 name resolution visibility checks).
type Visibility uint8

const (
	// VisPrivate is the default: visible only within the declaring module.
	VisPrivate Visibility = iota
	// VisPublic is reachable from importing modules.
	VisPublic
)

func (v Visibility) String() string {
	if v == VisPublic {
		return "public"
	}
	return "private"
}

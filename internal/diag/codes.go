package diag

import "fmt"

// Code is a rustc error code such as E0106.
type Code string

const UnknownCode Code = ""

const (
	// Лайфтаймы
	MissingLifetime          Code = "E0106"
	UndeclaredLifetime       Code = "E0261"
	ReservedLifetimeName     Code = "E0262"
	DuplicateLifetime        Code = "E0263"
	CannotInferLifetime      Code = "E0495"
	ExplicitLifetimeRequired Code = "E0621"
	LifetimeMismatch         Code = "E0623"
	HiddenTypeCaptures       Code = "E0700"
	ImplicitStaticRequired   Code = "E0759"

	// Заимствования
	MutableBorrowTwice     Code = "E0499"
	BorrowConflict         Code = "E0502"
	MoveOutWhileBorrowed   Code = "E0505"
	AssignWhileBorrowed    Code = "E0506"
	ReturnLocalReference   Code = "E0515"
	ValueDoesNotLiveLong   Code = "E0597"
	TemporaryDroppedBorrow Code = "E0716"
)

var codeDescription = map[Code]string{
	UnknownCode:              "unclassified diagnostic",
	MissingLifetime:          "missing lifetime specifier",
	UndeclaredLifetime:       "use of undeclared lifetime name",
	ReservedLifetimeName:     "invalid lifetime parameter name",
	DuplicateLifetime:        "lifetime declared twice",
	CannotInferLifetime:      "cannot infer an appropriate lifetime",
	ExplicitLifetimeRequired: "explicit lifetime required",
	LifetimeMismatch:         "lifetime mismatch",
	HiddenTypeCaptures:       "hidden type captures lifetime",
	ImplicitStaticRequired:   "implicit 'static requirement",
	MutableBorrowTwice:       "mutable borrow occurs twice",
	BorrowConflict:           "conflicting borrows",
	MoveOutWhileBorrowed:     "move out of borrowed value",
	AssignWhileBorrowed:      "assignment to borrowed value",
	ReturnLocalReference:     "returns a reference to local data",
	ValueDoesNotLiveLong:     "borrowed value does not live long enough",
	TemporaryDroppedBorrow:   "temporary value dropped while borrowed",
}

var lifetimeCodes = map[Code]bool{
	MissingLifetime:          true,
	UndeclaredLifetime:       true,
	CannotInferLifetime:      true,
	ExplicitLifetimeRequired: true,
	LifetimeMismatch:         true,
	HiddenTypeCaptures:       true,
	ImplicitStaticRequired:   true,
	ValueDoesNotLiveLong:     true,
	ReturnLocalReference:     true,
}

func (c Code) ID() string {
	if c == UnknownCode {
		return "E????"
	}
	return string(c)
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// Lifetime reports whether the code is one the lifetime passes usually repair.
func (c Code) Lifetime() bool { return lifetimeCodes[c] }

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

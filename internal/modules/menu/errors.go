package menu

import "fmt"

// UnknownRecipeError reports a stromboli whose recipe is missing from
// specialtyPizzas.
type UnknownRecipeError struct {
	Recipe string
}

func (e *UnknownRecipeError) Error() string {
	return fmt.Sprintf("unknown recipe %q", e.Recipe)
}

// DuplicateItemError reports a catalog id produced twice. The later entry is
// dropped.
type DuplicateItemError struct {
	ID string
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("duplicate menu item id %q", e.ID)
}

package pent

// AssertionError marks a broken solver invariant, e.g. corrupted
// dancing-links bookkeeping. It indicates a logic defect, never a
// property of the puzzle, and is raised as a panic so it cannot be
// confused with an unsolvable position.
type AssertionError struct {
	Message string
}

func (e AssertionError) Error() string {
	return "solver assertion failed: " + e.Message
}

func assertInvariant(cond bool, message string) {
	if !cond {
		panic(AssertionError{message})
	}
}

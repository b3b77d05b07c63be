package driver

import "sjavac/internal/diag"

// Outcome is the verdict for one program; the numeric value is the
// legacy CLI output.
type Outcome uint8

const (
	Legal Outcome = iota
	Illegal
	IOError
)

func (o Outcome) String() string {
	switch o {
	case Legal:
		return "legal"
	case Illegal:
		return "illegal"
	case IOError:
		return "ioerror"
	default:
		return "unknown"
	}
}

// Worst returns the more severe of a and b: IOError > Illegal > Legal.
func Worst(a, b Outcome) Outcome {
	return max(a, b)
}

// Classify maps a check error onto an outcome. IO codes and errors
// that did not come from the checker count as IOError. A file skipped
// because the run was cancelled also lands there, as IO4001 wrapping the
// context error: it was never judged legal or illegal.
func Classify(err error) Outcome {
	if err == nil {
		return Legal
	}
	de, ok := diag.AsError(err)
	if !ok || de.Family() == diag.FamilyIO {
		return IOError
	}
	return Illegal
}

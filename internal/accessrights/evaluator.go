package accessrights

// Decision is the outcome of evaluating a grant set against a list of
// declared requirements. Missing holds every unsatisfied pair, not just the
// first one, so callers can report an actionable message.
type Decision struct {
	Allowed bool
	Missing []Requirement
}

// Evaluate decides allow/deny for a requirement list against a user's full
// grant set. A requirement is satisfied iff a grant row with a matching
// module name exists and its named boolean is true. The overall decision is
// allow only when every requirement is satisfied; an empty requirement list
// is vacuously allowed.
func Evaluate(grants []Grant, required []Requirement) Decision {
	var missing []Requirement

	for _, req := range required {
		if !satisfied(grants, req) {
			missing = append(missing, req)
		}
	}

	return Decision{
		Allowed: len(missing) == 0,
		Missing: missing,
	}
}

func satisfied(grants []Grant, req Requirement) bool {
	for i := range grants {
		if grants[i].ModuleName == req.Module {
			return grants[i].Has(req.Permission)
		}
	}
	return false
}

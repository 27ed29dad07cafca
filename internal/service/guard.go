package service

// KeywordSetsEqual reports whether two keyword lists carry the same key
// material. The comparison is over sets: order and duplicates are ignored,
// but case and whitespace are significant, because the keywords are fed to
// the prompt verbatim and a casing change changes the generated letter.
//
// This is the whole idempotency guard. It is a pure function so the reuse
// decision is trivially testable apart from any storage or dispatch.
func KeywordSetsEqual(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, kw := range a {
		setA[kw] = struct{}{}
	}

	setB := make(map[string]struct{}, len(b))
	for _, kw := range b {
		setB[kw] = struct{}{}
	}

	if len(setA) != len(setB) {
		return false
	}
	for kw := range setA {
		if _, ok := setB[kw]; !ok {
			return false
		}
	}
	return true
}

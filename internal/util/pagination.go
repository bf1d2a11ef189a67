package util

const DefaultLimit = 100

// Clamp normalizes limit/skip before they are passed through to the remote
// catalog API. limit=0 is the recognized convention for "the entire
// collection, unpaginated" and is preserved as-is.
func Clamp(limit, skip int) (int, int) {
	if limit < 0 {
		limit = DefaultLimit
	}
	if skip < 0 {
		skip = 0
	}
	return limit, skip
}

package fits

import "errors"

// Common errors. Decode and encode fail fast: any of these aborts the call
// and no partial File is returned.
var (
	// ErrFormat marks structural violations in the byte stream: a primary
	// header not starting with SIMPLE, an extension header not starting
	// with XTENSION, or a stream ending mid-card or mid-data.
	ErrFormat = errors.New("malformed FITS stream")

	// ErrMissingField marks a required header keyword that is absent,
	// such as a TFORM{i} for a declared table field.
	ErrMissingField = errors.New("required header keyword missing")

	// ErrUnsupportedFormat marks a BITPIX value or TFORM type code
	// outside the supported set.
	ErrUnsupportedFormat = errors.New("unsupported data format")

	// ErrInvalidOperation marks misuse of the header API, such as Set
	// called with the COMMENT or HISTORY pseudo-keys.
	ErrInvalidOperation = errors.New("invalid header operation")

	// ErrStructure marks a container-level invariant violation, such as
	// appending an extension HDU before a primary exists.
	ErrStructure = errors.New("invalid container structure")
)

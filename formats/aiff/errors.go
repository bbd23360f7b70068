package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input is not a parseable AIFF/AIFC file
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedBitDepth indicates a sample size other than 8/16/24/32 bits
	ErrUnsupportedBitDepth = errors.New("unsupported AIFF bit depth")

	// ErrUnsupportedAiffLayout indicates an AIFF without a usable format
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)

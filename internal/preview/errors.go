package preview

import "errors"

// ErrNoLocation indicates a failure carried no usable source location.
var ErrNoLocation = errors.New("no source location")

// ErrLineOutOfRange indicates the requested line is not in the file.
var ErrLineOutOfRange = errors.New("line out of range")

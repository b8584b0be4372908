package credentials

import "errors"

// ErrConfiguration is returned when a required configuration field is
// missing, blank or malformed. The wrapping error names the section and the
// key, never the value.
var ErrConfiguration = errors.New("credential configuration error")

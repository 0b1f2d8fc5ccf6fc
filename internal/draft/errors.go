package draft

import "errors"

// errEmptyCompletion is returned when the model replied but the parsed draft
// had no body to work with.
var errEmptyCompletion = errors.New("model response contained no email body")

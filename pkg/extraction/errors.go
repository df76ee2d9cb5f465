package extraction

import "errors"

// ErrAmbiguousSender stops processing of a single fragment whose attribution
// clause names more than one bracketed person.
var ErrAmbiguousSender = errors.New("multiple possible senders in one clause")

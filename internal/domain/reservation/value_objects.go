package reservation

import "errors"

var ErrTokenAlreadyAssigned = errors.New("reservation token is already assigned")

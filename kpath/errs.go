package kpath

import "errors"

var ErrBadPath = errors.New("malformed path")

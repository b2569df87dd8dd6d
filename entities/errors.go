package entities

import "errors"

var ErrEmptyFeeRange = errors.New("empty fee range")
var ErrNoBlocks = errors.New("no blocks")

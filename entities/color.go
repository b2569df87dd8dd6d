package entities

import "fmt"

type RGB struct {
	R uint8
	G uint8
	B uint8
}

var Off = RGB{}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

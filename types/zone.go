package types

import (
	"errors"
	"fmt"
	"strings"
)

type Zone string

const (
	ZoneSE1 Zone = "SE1" // Luleå
	ZoneSE2 Zone = "SE2" // Sundsvall
	ZoneSE3 Zone = "SE3" // Stockholm
	ZoneSE4 Zone = "SE4" // Malmö
)

var ErrInvalidZone = errors.New("invalid zone, choose SE1, SE2, SE3 or SE4")

var Zones = []Zone{ZoneSE1, ZoneSE2, ZoneSE3, ZoneSE4}

func ParseZone(str string) (Zone, error) {
	z := Zone(strings.ToUpper(strings.TrimSpace(str)))
	if !z.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidZone, str)
	}
	return z, nil
}

func (z Zone) IsValid() bool {
	switch z {
	case ZoneSE1, ZoneSE2, ZoneSE3, ZoneSE4:
		return true
	default:
		return false
	}
}

func (z Zone) String() string {
	return string(z)
}

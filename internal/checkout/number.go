package checkout

import (
	"math/rand"
	"strconv"
)

// Order numbers are short on purpose: customers read them back over WhatsApp.
// 9000 possible values means collisions are expected, so candidates are only
// trusted after the unique index accepts them (see Service.Submit).
const (
	numberMin = 1000
	numberMax = 9999
)

// NumberSource yields candidate order numbers. Tests swap in deterministic
// sources to force collisions.
type NumberSource func() string

// RandomNumber draws a uniform 4-digit candidate.
func RandomNumber() string {
	return strconv.Itoa(numberMin + rand.Intn(numberMax-numberMin+1))
}

// pkg/control/bindings.go
package control

import (
	"sort"
	"time"
)

// Binding ties a named key to an action of one player
type Binding struct {
	Player string
	Action Action
}

// Bindings maps frontend key names to actions
type Bindings map[string]Binding

// Keys returns the bound key names in sorted order
func (b Bindings) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultBindings is the two player layout for frontends that report key
// releases and modifier keys
func DefaultBindings(player1, player2 string) Bindings {
	return Bindings{
		"Up":         {player1, Thrust()},
		"Left":       {player1, Rotate(CounterClockwise)},
		"Right":      {player1, Rotate(Clockwise)},
		"RightCtrl":  {player1, FireWeapon(0)},
		"RightShift": {player1, FireWeapon(1)},
		"Tab":        {player1, SwitchWeapon()},

		"W":         {player2, Thrust()},
		"A":         {player2, Rotate(CounterClockwise)},
		"D":         {player2, Rotate(Clockwise)},
		"LeftCtrl":  {player2, FireWeapon(0)},
		"LeftShift": {player2, FireWeapon(1)},
		"Q":         {player2, SwitchWeapon()},
	}
}

// TerminalBindings is the two player layout for terminals, which cannot see
// modifier keys on their own
func TerminalBindings(player1, player2 string) Bindings {
	return Bindings{
		"Up":    {player1, Thrust()},
		"Left":  {player1, Rotate(CounterClockwise)},
		"Right": {player1, Rotate(Clockwise)},
		".":     {player1, FireWeapon(-1)},
		"/":     {player1, SwitchWeapon()},

		"w": {player2, Thrust()},
		"a": {player2, Rotate(CounterClockwise)},
		"d": {player2, Rotate(Clockwise)},
		"f": {player2, FireWeapon(-1)},
		"q": {player2, SwitchWeapon()},
	}
}

// KeyHold synthesises key releases for input sources that only report
// presses. A key counts as held until it has not been seen for Timeout.
type KeyHold struct {
	Timeout time.Duration
	seen    map[string]time.Time
}

// NewKeyHold creates a KeyHold; timeout should exceed the key repeat delay
func NewKeyHold(timeout time.Duration) *KeyHold {
	return &KeyHold{Timeout: timeout, seen: make(map[string]time.Time)}
}

// Press records key at now and reports whether it was not already held
func (k *KeyHold) Press(key string, now time.Time) bool {
	_, held := k.seen[key]
	k.seen[key] = now
	return !held
}

// Expire returns, in sorted order, the keys not seen since now-Timeout
// and forgets them
func (k *KeyHold) Expire(now time.Time) []string {
	var released []string
	for key, at := range k.seen {
		if now.Sub(at) >= k.Timeout {
			released = append(released, key)
			delete(k.seen, key)
		}
	}
	sort.Strings(released)
	return released
}

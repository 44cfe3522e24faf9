// pkg/control/action.go
package control

import "fmt"

// ActionKind tags the variant of an input action
type ActionKind int

const (
	ActionThrust ActionKind = iota
	ActionRotate
	ActionFireWeapon
	ActionSwitchWeapon
)

// Rotation directions; counter-clockwise on screen is positive
const (
	CounterClockwise = 1
	Clockwise        = -1
)

// Action is one control a player can press and release. Only the fields
// of its Kind are meaningful.
type Action struct {
	Kind ActionKind
	// Direction is CounterClockwise or Clockwise for ActionRotate
	Direction int
	// Weapon is the weapon index for ActionFireWeapon; -1 fires the selected one
	Weapon int
}

// Thrust fires the main engine while held
func Thrust() Action {
	return Action{Kind: ActionThrust}
}

// Rotate turns the ship in direction while held
func Rotate(direction int) Action {
	return Action{Kind: ActionRotate, Direction: direction}
}

// FireWeapon holds the trigger of weapon index
func FireWeapon(index int) Action {
	return Action{Kind: ActionFireWeapon, Weapon: index}
}

// SwitchWeapon cycles the selected weapon on press
func SwitchWeapon() Action {
	return Action{Kind: ActionSwitchWeapon}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionThrust:
		return "thrust"
	case ActionRotate:
		if a.Direction == Clockwise {
			return "rotate-cw"
		}
		return "rotate-ccw"
	case ActionFireWeapon:
		if a.Weapon < 0 {
			return "fire-selected"
		}
		return fmt.Sprintf("fire-%d", a.Weapon)
	case ActionSwitchWeapon:
		return "switch-weapon"
	default:
		return "unknown"
	}
}

// pkg/entity/animation.go
package entity

// Animation steps through a sequence of sprite sheet regions at a fixed
// cadence. A looping animation wraps to its first frame; a one-shot
// animation stops on its last frame and reports Done.
type Animation struct {
	Frames   []Region
	Sequence []int
	Delay    float64
	Loop     bool

	index int
	clock float64
	done  bool
}

// NewAnimation creates an animation over frames. A nil sequence plays the
// frames in order. A non-positive delay holds the first frame forever.
func NewAnimation(frames []Region, sequence []int, delay float64, loop bool) *Animation {
	if len(sequence) == 0 {
		sequence = make([]int, len(frames))
		for i := range sequence {
			sequence[i] = i
		}
	}
	return &Animation{
		Frames:   frames,
		Sequence: sequence,
		Delay:    delay,
		Loop:     loop,
	}
}

// Still is a single-frame animation
func Still(frame Region) *Animation {
	return NewAnimation([]Region{frame}, nil, 0, true)
}

// Advance moves the clock forward and reports whether the frame changed
func (a *Animation) Advance(deltaTime float64) bool {
	if a.done || a.Delay <= 0 {
		return false
	}
	a.clock += deltaTime
	if a.clock < a.Delay {
		return false
	}
	a.clock = 0

	if a.index+1 < len(a.Sequence) {
		a.index++
		return true
	}
	if !a.Loop {
		a.done = true
		return false
	}
	changed := a.index != 0
	a.index = 0
	return changed
}

// Frame returns the position within the sequence
func (a *Animation) Frame() int {
	return a.index
}

// SetFrame jumps to position i of the sequence, wrapping out-of-range values
func (a *Animation) SetFrame(i int) {
	n := len(a.Sequence)
	a.index = ((i % n) + n) % n
}

// Len returns the number of steps in the sequence
func (a *Animation) Len() int {
	return len(a.Sequence)
}

// Done reports whether a one-shot animation has played through
func (a *Animation) Done() bool {
	return a.done
}

// Region returns the sprite sheet region of the current frame
func (a *Animation) Region() Region {
	return a.Frames[a.Sequence[a.index]]
}

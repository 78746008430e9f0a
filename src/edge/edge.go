package edge

// State carries the previous tick's sampled key level.
// The zero value is the startup state (released).
type State struct {
	LastPressed bool
}

// Detect reports true only on the tick where the key goes from released to
// pressed. Holding the key does not re-trigger. The current level is stored
// into st unconditionally.
func Detect(currentPressed bool, st *State) bool {
	fired := currentPressed && !st.LastPressed
	st.LastPressed = currentPressed
	return fired
}

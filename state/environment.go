package state

// Environment is the hook ECALL transfers control to, the Go shape of
// original_source/riscvmodel/model.py's environment.call(state): a
// pluggable callback that inspects State and decides whether to end the
// program by calling State.Terminate. A State with no Environment treats
// ECALL as a no-op; privileged trap delivery is out of scope.
type Environment interface {
	Call(s *State)
}

// EnvironmentFunc adapts a plain function to Environment.
type EnvironmentFunc func(s *State)

func (f EnvironmentFunc) Call(s *State) { f(s) }

// Ecall invokes the configured environment hook, if any. Instruction
// semantics call this rather than touching s.Env directly, keeping the
// hook concept (and its ability to be nil) out of insts.Machine's
// required surface beyond this one method.
func (s *State) Ecall() {
	if s.Env != nil {
		s.Env.Call(s)
	}
}

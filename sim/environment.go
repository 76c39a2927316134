package sim

import "github.com/wallento/riscvmodel/state"

// exitOnA0 is the Simulator's default ECALL environment: it treats any
// ECALL as a request to end the run, taking the exit code from a0 (x10),
// the same convention riscv-tests/newlib bare-metal programs use to
// report pass/fail to the harness that ran them.
var exitOnA0 = state.EnvironmentFunc(func(s *state.State) {
	s.Terminate(int(s.SignedReg(10)))
})

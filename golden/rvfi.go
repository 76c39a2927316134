package golden

import (
	"fmt"

	"github.com/wallento/riscvmodel/insts"
	"github.com/wallento/riscvmodel/rtrace"
)

// RVFISignals is the slice of an RVFI-style retire record this model
// needs: whether the retiring cycle is valid, the raw instruction word,
// and the destination register write it produced.
type RVFISignals struct {
	Valid   bool
	Insn    uint32
	RdAddr  uint8
	RdWdata uint64
}

// TracesFromRVFI decodes an RVFI retire record into the trace entries
// Commit expects, translating golden.py's traces_from_rvfi. decoder
// must be scoped to the same variant the retiring core implements.
func TracesFromRVFI(decoder *insts.Decoder, rvfi RVFISignals) (rtrace.Trace, error) {
	if !rvfi.Valid {
		return nil, nil
	}

	inst, err := decoder.Decode(rvfi.Insn)
	if err != nil {
		return nil, err
	}

	if rvfi.RdAddr == 0 && rvfi.RdWdata != 0 {
		return nil, fmt.Errorf("golden: rd[0] cannot be written by core")
	}

	var t rtrace.Trace
	if rvfi.RdAddr != 0 && inst.HasRd() {
		t = append(t, rtrace.IntReg{Index: rvfi.RdAddr, Value: rvfi.RdWdata})
	}
	return t, nil
}

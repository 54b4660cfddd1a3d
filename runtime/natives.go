package runtime

import (
	"fmt"
	"time"

	"github.com/sergev/golox/lang"
)

var now = time.Now

func installNatives(in *lang.Interpreter) {
	in.DefineNative("clock", 0, nativeClock)
}

// nativeClock returns the wall-clock time in milliseconds since the Unix epoch.
func nativeClock(_ *lang.Interpreter, _ []lang.Value) (lang.Value, error) {
	ms := now().UnixMilli()
	if ms < 0 {
		return lang.Value{}, fmt.Errorf("clock returned invalid duration %dms", ms)
	}
	return lang.NumberValue(float64(ms)), nil
}

package process

// Notes:
// - Real process trees are killed by the browser integration tests; here we
//   only check the guard and that an absent PID reports an error.

import (
	"errors"
	"testing"
)

func TestKillTree(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1, -4242} {
		if err := KillTree(pid); !errors.Is(err, ErrInvalidPID) {
			t.Errorf("KillTree(%d) error = %v, want ErrInvalidPID", pid, err)
		}
	}

	if err := KillTree(999999999); err == nil {
		t.Error("KillTree(absent pid) returned nil")
	}
}

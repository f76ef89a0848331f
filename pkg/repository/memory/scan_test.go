package memory_test

import (
	"testing"

	"github.com/secmon-lab/barrage/pkg/repository/memory"
	"github.com/secmon-lab/barrage/pkg/repository/testhelper"
)

func TestMemoryScanRepository(t *testing.T) {
	repo := memory.New()
	testhelper.TestAll(t, repo)
}

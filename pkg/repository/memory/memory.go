package memory

import (
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/domain/model"
)

// New creates a new in-memory repository
func New() interfaces.ScanRepository {
	return &scanRepository{
		projects: make(map[string]map[string]*model.ScanRecord),
	}
}

package sync

import (
	"errors"
	"fmt"

	"fleet-console/feature/sync/models"

	"gorm.io/gorm"
)

// resolver maps natural keys to stored entities against the current
// transaction. All lookups see writes made earlier in the same batch,
// which is what lets an execution reference an agent created two
// categories earlier in the same call.
type resolver struct {
	tx *gorm.DB
}

// resolveAgent looks up an agent by its unique name. Absence is not an
// error: agents are upserted, so found=false signals the create path.
func (r *resolver) resolveAgent(name string) (*models.Agent, bool, error) {
	var agent models.Agent
	err := r.tx.Where("name = ?", name).First(&agent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &agent, true, nil
}

// resolveAgentForExecution looks up an agent by name for attaching an
// execution. Here absence is a hard per-record failure: an execution
// cannot reference an agent that does not exist.
func (r *resolver) resolveAgentForExecution(name string) (*models.Agent, error) {
	agent, found, err := r.resolveAgent(name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("Agent not found for execution: %s", name)
	}
	return agent, nil
}

// resolveTask looks up a task by its id for the update path. An unknown
// id is a per-record failure, never an implicit create.
func (r *resolver) resolveTask(id uint) (*models.Task, error) {
	var task models.Task
	err := r.tx.First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("update attempted on unknown task: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

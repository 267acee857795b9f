package execution

import "ctr/internal/suite"

// Scheduler distributes suites across workers
type Scheduler interface {
	Schedule(suites []suite.Definition, workerCount int) [][]suite.Definition
}

// RoundRobinScheduler distributes suites evenly across workers
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule distributes suites evenly across workers using round-robin
func (s *RoundRobinScheduler) Schedule(suites []suite.Definition, workerCount int) [][]suite.Definition {
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(suites) && len(suites) > 0 {
		workerCount = len(suites)
	}

	distribution := make([][]suite.Definition, workerCount)
	for i := range distribution {
		distribution[i] = make([]suite.Definition, 0)
	}

	for i, def := range suites {
		workerIndex := i % workerCount
		distribution[workerIndex] = append(distribution[workerIndex], def)
	}

	return distribution
}

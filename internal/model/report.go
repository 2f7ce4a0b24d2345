package model

import "time"

// ConciseCase is one selected test case in the concise set, as persisted
// in a run report.
type ConciseCase struct {
	Args     string   `yaml:"args"`
	Expected string   `yaml:"expected"`
	Kills    []string `yaml:"kills"`
}

// RunReport summarizes one concise test-set generation run.
type RunReport struct {
	RunID        string        `yaml:"run_id"`
	FuncName     string        `yaml:"func_name"`
	GeneratedAt  time.Time     `yaml:"generated_at"`
	BaseSetSize  int           `yaml:"base_set_size"`
	NumRandom    int           `yaml:"num_random"`
	RefFailures  int           `yaml:"reference_failures"`
	Candidates   []string      `yaml:"candidates"`
	Unreachable  []string      `yaml:"unreachable"`
	ConciseCases []ConciseCase `yaml:"concise_cases"`
}

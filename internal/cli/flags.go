package cli

import "ctr/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigPath     string
	Processors     int
	Filter         string
	Migrate        bool
	Fresh          bool
	FailFast       bool
	PersistOnAbort bool
	Operator       string
	Verbose        bool
	OpenFaills     bool
	ShowCases      bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigPath:     f.ConfigPath,
		Processors:     f.Processors,
		Filter:         f.Filter,
		Migrate:        f.Migrate,
		Fresh:          f.Fresh,
		FailFast:       f.FailFast,
		PersistOnAbort: f.PersistOnAbort,
		Operator:       f.Operator,
		Verbose:        f.Verbose,
		OpenFaills:     f.OpenFaills,
		ShowCases:      f.ShowCases,
	}
}

package main

import "testing"

import s "github.com/bnclabs/gosettings"

func TestScenarios(t *testing.T) {
	defer func(json bool) { options.json = json }(options.json)

	for _, asjson := range []bool{false, true} {
		options.json = asjson
		runscenarios(t)
	}
}

func runscenarios(t *testing.T) {
	for _, reserver := range []string{"heap", "mmap"} {
		setts := s.Settings{"capacity": int64(10 * 1024), "reserver": reserver}
		for _, scenario := range scenarios {
			if err := scenario.run(setts); err != nil {
				t.Errorf("%v/%v: %v", reserver, scenario.name, err)
			}
		}
	}
}

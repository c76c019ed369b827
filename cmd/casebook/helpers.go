// Shared helpers for output and profile-filter construction.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/casebook/internal/aggregate"
	"github.com/mesh-intelligence/casebook/internal/config"
	"github.com/mesh-intelligence/casebook/internal/paths"
	"github.com/mesh-intelligence/casebook/internal/profiles"
	"github.com/mesh-intelligence/casebook/internal/xmlcodec"
	"github.com/mesh-intelligence/casebook/pkg/types"
)

// isNotFound reports whether err is a document- or payload-not-found
// error.
func isNotFound(err error) bool {
	return errors.Is(err, types.ErrNotFound)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// activeFilter derives the profile filter for the instance: checklist
// document -> active profiles, filter mode from the checklist's template
// configuration with casebook.yaml as fallback. Returns nil (no
// filtering) when no checklist exists or nothing is active.
func activeFilter(instanceDir string) (*aggregate.ProfileFilter, error) {
	path, ok := paths.ProfilesFile(instanceDir)
	if !ok {
		return nil, nil
	}
	cfg, err := xmlcodec.LoadProfileConfiguration(path)
	if err != nil {
		return nil, fmt.Errorf("load checklist: %w", err)
	}

	active := profiles.DeriveActive(cfg)
	if len(active) == 0 {
		return nil, nil
	}

	mode := cfg.Template.ProfileFilterMode
	if mode == "" {
		conf, err := config.Load(instanceDir)
		if err != nil {
			return nil, err
		}
		mode = conf.FilterMode
	}
	return &aggregate.ProfileFilter{Active: active, Mode: mode}, nil
}

// collector builds the aggregation collector for the instance.
func collector(instanceDir string) *aggregate.Collector {
	return aggregate.NewCollector(paths.TestcasesDir(instanceDir), newLogger())
}

package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/odvcencio/weave/pkg/merge"
)

// fileConfig mirrors the optional weave.toml:
//
//	strategy = "manual"
//
//	[markers]
//	left  = "<<<<<<<"
//	base  = "|||||||"
//	sep   = "======="
//	right = ">>>>>>>"
//
//	[labels]
//	left  = "ours"
//	base  = "base"
//	right = "theirs"
type fileConfig struct {
	Strategy string `toml:"strategy"`

	Markers struct {
		Left  string `toml:"left"`
		Base  string `toml:"base"`
		Sep   string `toml:"sep"`
		Right string `toml:"right"`
	} `toml:"markers"`

	Labels struct {
		Left  string `toml:"left"`
		Base  string `toml:"base"`
		Right string `toml:"right"`
	} `toml:"labels"`
}

// loadOptions builds merge options from a config file. An empty path falls
// back to $WEAVE_CONFIG, then ./weave.toml; a missing file yields the zero
// options (manual strategy, git-style markers).
func loadOptions(path string) (merge.Options, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv("WEAVE_CONFIG")
	}
	if path == "" {
		path = "weave.toml"
	}

	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return merge.Options{}, nil
		}
		return merge.Options{}, fmt.Errorf("load config %s: %w", path, err)
	}

	strategy, err := merge.ParseStrategy(cfg.Strategy)
	if err != nil {
		return merge.Options{}, fmt.Errorf("load config %s: %w", path, err)
	}

	opts := merge.Options{
		Strategy:   strategy,
		LeftLabel:  cfg.Labels.Left,
		BaseLabel:  cfg.Labels.Base,
		RightLabel: cfg.Labels.Right,
	}
	if cfg.Markers.Left != "" || cfg.Markers.Base != "" || cfg.Markers.Sep != "" || cfg.Markers.Right != "" {
		opts.Markers = merge.Markers{
			Left:  cfg.Markers.Left,
			Base:  cfg.Markers.Base,
			Sep:   cfg.Markers.Sep,
			Right: cfg.Markers.Right,
		}
	}
	return opts, nil
}

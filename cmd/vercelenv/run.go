package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/viper"

	"github.com/loykin/vercelenv/cmd/vercelenv/config"
	"github.com/loykin/vercelenv/internal/common"
	"github.com/loykin/vercelenv/internal/constants"
	"github.com/loykin/vercelenv/internal/vercel"
)

// logOutput receives structured logs; stdout is reserved for the report.
var logOutput io.Writer = os.Stderr

// loadConfig builds the effective config: defaults, then the YAML file, then
// flags and VERCELENV_* environment variables.
func loadConfig(v *viper.Viper) (*config.ConfigDoc, error) {
	doc := config.Defaults()

	path := v.GetString("config")
	explicit := path != ""
	if !explicit {
		path = constants.DefaultConfigPath
	}
	if err := doc.Load(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if err := doc.ApplyOverrides(v); err != nil {
		return nil, err
	}
	return &doc, nil
}

func run(ctx context.Context, v *viper.Viper, out io.Writer) error {
	doc, err := loadConfig(v)
	if err != nil {
		return err
	}
	if err := doc.SetupLogging(logOutput); err != nil {
		return err
	}

	setter, err := doc.Setter()
	if err != nil {
		return err
	}

	if v.GetBool("dry_run") {
		rr, err := setter.DryRun()
		if err != nil {
			return err
		}
		return vercel.ReportDryRun(out, rr, common.NewMasker())
	}

	res, err := setter.Execute(ctx)
	if err != nil {
		return err
	}
	// An API failure is reported, not returned: the process still exits 0.
	return vercel.Report(out, setter.Request.Payload.Key, res)
}

package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/loykin/vercelenv/internal/common"
	"github.com/loykin/vercelenv/internal/constants"
	"github.com/loykin/vercelenv/internal/httpc"
	"github.com/loykin/vercelenv/internal/util"
	"github.com/loykin/vercelenv/internal/vercel"
)

type VercelConfig struct {
	APIBase   string `mapstructure:"api_base" yaml:"api_base"`
	ProjectID string `mapstructure:"project_id" yaml:"project_id"`
	TeamID    string `mapstructure:"team_id" yaml:"team_id,omitempty"`
	// Token is accepted for completeness; prefer TokenFromEnv so the secret stays out of files.
	Token        string `mapstructure:"token" yaml:"token,omitempty"`
	TokenFromEnv string `mapstructure:"token_from_env" yaml:"token_from_env"`
}

type VariableConfig struct {
	Key    string   `mapstructure:"key" yaml:"key"`
	Value  string   `mapstructure:"value" yaml:"value"`
	Type   string   `mapstructure:"type" yaml:"type"`
	Target []string `mapstructure:"target" yaml:"target"`
	Upsert bool     `mapstructure:"upsert" yaml:"upsert"`
}

type ClientConfig struct {
	Insecure      bool   `mapstructure:"insecure" yaml:"insecure"`
	MinTLSVersion string `mapstructure:"min_tls_version" yaml:"min_tls_version,omitempty"`
	MaxTLSVersion string `mapstructure:"max_tls_version" yaml:"max_tls_version,omitempty"`
}

type LoggingConfig struct {
	Level         string `mapstructure:"level" yaml:"level"`                             // error, warn, info, debug
	Format        string `mapstructure:"format" yaml:"format"`                           // text, json, color
	MaskSensitive *bool  `mapstructure:"mask_sensitive" yaml:"mask_sensitive,omitempty"` // enable/disable sensitive data masking
	Color         *bool  `mapstructure:"color" yaml:"color,omitempty"`                   // enable/disable colorized output
}

type ConfigDoc struct {
	Vercel   VercelConfig   `mapstructure:"vercel" yaml:"vercel"`
	Variable VariableConfig `mapstructure:"variable" yaml:"variable"`
	Client   ClientConfig   `mapstructure:"client" yaml:"client"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// Defaults returns the configuration used when nothing else is provided.
func Defaults() ConfigDoc {
	return ConfigDoc{
		Vercel: VercelConfig{
			APIBase:      constants.DefaultAPIBase,
			ProjectID:    constants.DefaultProjectID,
			TokenFromEnv: constants.TokenEnvVar,
		},
		Variable: VariableConfig{
			Key:    constants.DefaultKey,
			Value:  constants.DefaultValue,
			Type:   constants.DefaultType,
			Target: append([]string(nil), constants.DefaultTargets...),
		},
		Logging: LoggingConfig{
			Level:  constants.DefaultLogLevel,
			Format: constants.DefaultLogFormat,
		},
	}
}

// Load decodes a YAML file on top of the receiver; keys absent from the file keep their value.
func (c *ConfigDoc) Load(path string) error {
	clean := filepath.Clean(path)
	// Ensure path points to a regular file to avoid opening directories/special files
	if info, statErr := os.Stat(clean); statErr != nil || !info.Mode().IsRegular() {
		if statErr != nil {
			return statErr
		}
		return fmt.Errorf("not a regular file: %s", clean)
	}
	// #nosec G304 -- config path is provided intentionally by the user/CI; cleaned and validated above
	f, err := os.Open(clean)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	// yaml.v3 replaces slices wholesale, so a target list in the file overrides the default list.
	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse %s: %w", clean, err)
	}
	return nil
}

// overrideKeys maps flat viper keys (flags and VERCELENV_* env vars) to config paths.
var overrideKeys = map[string]string{
	"api_base":        "vercel.api_base",
	"project_id":      "vercel.project_id",
	"team_id":         "vercel.team_id",
	"token":           "vercel.token",
	"key":             "variable.key",
	"value":           "variable.value",
	"type":            "variable.type",
	"target":          "variable.target",
	"upsert":          "variable.upsert",
	"insecure":        "client.insecure",
	"min_tls_version": "client.min_tls_version",
	"max_tls_version": "client.max_tls_version",
	"log_level":       "logging.level",
	"log_format":      "logging.format",
}

// ApplyOverrides copies every key explicitly set in v (flag, env or Set) onto the document.
func (c *ConfigDoc) ApplyOverrides(v *viper.Viper) error {
	overrides := map[string]interface{}{}
	for flat, path := range overrideKeys {
		if !v.IsSet(flat) {
			continue
		}
		section, field, _ := strings.Cut(path, ".")
		m, ok := overrides[section].(map[string]interface{})
		if !ok {
			m = map[string]interface{}{}
			overrides[section] = m
		}
		m[field] = v.Get(flat)
	}
	if len(overrides) == 0 {
		return nil
	}
	if vars, ok := overrides["variable"].(map[string]interface{}); ok {
		if _, ok := vars["target"]; ok {
			c.Variable.Target = nil
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(overrides); err != nil {
		return fmt.Errorf("apply overrides: %w", err)
	}
	return nil
}

// ResolveToken returns the explicit token or, failing that, the one named by TokenFromEnv.
func (c *ConfigDoc) ResolveToken() string {
	if tok, ok := util.TrimEmptyCheck(c.Vercel.Token); ok {
		return tok
	}
	envVar, ok := util.TrimEmptyCheck(c.Vercel.TokenFromEnv)
	if !ok {
		return ""
	}
	tok := strings.TrimSpace(os.Getenv(envVar))
	if tok == "" {
		common.GetLogger().Warn("token variable requested but empty or not set", "env_var", envVar)
	}
	return tok
}

// TLSConfig builds the client TLS settings; nil means library defaults.
func (c *ConfigDoc) TLSConfig() (*tls.Config, error) {
	return httpc.BuildTLSConfig(c.Client.Insecure, c.Client.MinTLSVersion, c.Client.MaxTLSVersion)
}

// Setter validates the document and builds the env-var setter from it.
func (c *ConfigDoc) Setter() (*vercel.Setter, error) {
	typ, err := vercel.ParseEnvType(c.Variable.Type)
	if err != nil {
		return nil, err
	}
	targets, err := vercel.ParseTargets(util.CleanList(c.Variable.Target))
	if err != nil {
		return nil, err
	}
	tlsCfg, err := c.TLSConfig()
	if err != nil {
		return nil, err
	}
	return &vercel.Setter{
		Request: vercel.RequestSpec{
			APIBase:   c.Vercel.APIBase,
			ProjectID: c.Vercel.ProjectID,
			Token:     c.ResolveToken(),
			TeamID:    c.Vercel.TeamID,
			Upsert:    c.Variable.Upsert,
			Payload: vercel.Payload{
				Key:    strings.TrimSpace(c.Variable.Key),
				Value:  c.Variable.Value,
				Type:   typ,
				Target: targets,
			},
		},
		TLSConfig: tlsCfg,
	}, nil
}

func (c *ConfigDoc) parseLogLevel() (common.LogLevel, error) {
	switch util.TrimAndLower(c.Logging.Level) {
	case "error":
		return common.LogLevelError, nil
	case "warn", "warning":
		return common.LogLevelWarn, nil
	case "info", "":
		return common.LogLevelInfo, nil
	case "debug":
		return common.LogLevelDebug, nil
	default:
		return common.LogLevelInfo, fmt.Errorf("invalid logging level: %s (valid: error, warn, info, debug)", c.Logging.Level)
	}
}

// SetupLogging configures the global logger based on config settings. Logs go
// to w so they never interleave with the report on stdout.
func (c *ConfigDoc) SetupLogging(w io.Writer) error {
	level, err := c.parseLogLevel()
	if err != nil {
		return err
	}

	format := util.TrimAndLower(c.Logging.Format)
	useColor := format == "color" || format == "colour"
	if c.Logging.Color != nil {
		useColor = *c.Logging.Color
	}

	var logger *common.Logger
	switch format {
	case "json":
		logger = common.NewJSONLogger(level, w)
	case "color", "colour", "text", "":
		if useColor {
			logger = common.NewColorLogger(level, w, c.Logging.Color != nil)
		} else {
			logger = common.NewLogger(level, w)
		}
	default:
		return fmt.Errorf("invalid logging format: %s (valid: text, json, color)", c.Logging.Format)
	}

	maskingEnabled := true
	if c.Logging.MaskSensitive != nil {
		maskingEnabled = *c.Logging.MaskSensitive
	}
	logger.EnableMasking(maskingEnabled)
	common.SetDefaultLogger(logger)

	logger.Debug("logging configured",
		"level", level.String(),
		"format", util.TrimWithDefault(format, constants.DefaultLogFormat),
		"color", useColor,
		"mask_sensitive", maskingEnabled)
	return nil
}

// WriteSample writes the default configuration as YAML to path. Existing files
// are only replaced when force is true. The token itself is never written.
func WriteSample(path string, force bool) error {
	clean := filepath.Clean(path)
	if !force {
		if _, err := os.Stat(clean); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", clean)
		}
	}
	doc := Defaults()
	doc.Vercel.Token = ""
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(clean); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(clean, data, 0o600)
}

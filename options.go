package containers

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Options configures an allocator.
type Options struct {
	// MaxBytes caps a single block. 0 means unlimited.
	MaxBytes int64 `yaml:"max_bytes"`
	// MaxCached bounds how many freed blocks of one length a Pool keeps.
	MaxCached int `yaml:"max_cached"`
	// ZeroFill makes a Pool clear recycled blocks before handing them out.
	// Heap blocks are always zeroed by the runtime.
	ZeroFill bool `yaml:"zero_fill"`
	// LogLevel is parsed by logrus.ParseLevel; empty leaves the logger alone.
	// It applies to Logger, or to a private copy of the standard logger.
	LogLevel string `yaml:"log_level"`

	Logger *logrus.Logger `yaml:"-"`
}

const defaultMaxCached = 8

// LoadOptions decodes YAML options. Unknown keys are rejected.
func LoadOptions(r io.Reader) (Options, error) {
	var opts Options
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		return Options{}, fmt.Errorf("containers: decode options: %w", err)
	}
	if err := opts.validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// LoadOptionsFile reads options from a YAML file.
func LoadOptionsFile(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, fmt.Errorf("containers: open options: %w", err)
	}
	defer f.Close()
	return LoadOptions(f)
}

func (o Options) validate() error {
	if o.MaxBytes < 0 {
		return fmt.Errorf("containers: max_bytes must be >= 0, got %d", o.MaxBytes)
	}
	if o.MaxCached < 0 {
		return fmt.Errorf("containers: max_cached must be >= 0, got %d", o.MaxCached)
	}
	if o.LogLevel != "" {
		if _, err := logrus.ParseLevel(o.LogLevel); err != nil {
			return fmt.Errorf("containers: %w", err)
		}
	}
	return nil
}

// logger resolves the logger an allocator writes to and applies LogLevel.
// The standard logger is never reconfigured: a level without a Logger gets
// a private logger that writes where the standard one does.
func (o Options) logger() *logrus.Logger {
	if o.LogLevel == "" {
		if o.Logger != nil {
			return o.Logger
		}
		return logrus.StandardLogger()
	}
	lvl, err := logrus.ParseLevel(o.LogLevel)
	if o.Logger != nil {
		if err == nil {
			o.Logger.SetLevel(lvl)
		}
		return o.Logger
	}
	std := logrus.StandardLogger()
	l := logrus.New()
	l.SetOutput(std.Out)
	l.SetFormatter(std.Formatter)
	l.SetLevel(std.GetLevel())
	if err == nil {
		l.SetLevel(lvl)
	}
	return l
}

func (o Options) maxCached() int {
	if o.MaxCached == 0 {
		return defaultMaxCached
	}
	return o.MaxCached
}

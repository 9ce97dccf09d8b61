package cmd

import (
	"fmt"

	"github.com/kbsecret/kbsecret/internal/cli"
	"github.com/kbsecret/kbsecret/internal/config"
	"github.com/kbsecret/kbsecret/internal/generator"
	"github.com/kbsecret/kbsecret/internal/record"
	"github.com/kbsecret/kbsecret/internal/session"
	"github.com/kbsecret/kbsecret/internal/wizard"
)

// newPrompter is replaced in tests.
var newPrompter = func() wizard.Prompter { return wizard.NewSurveyPrompter() }

// runtime is the per-invocation view of config.yml and the record store.
// Both are loaded on first use, so help and introspection never touch them.
type runtime struct {
	cfgPath   string
	storePath string
	cfg       *config.Config
	store     *session.Store
}

func newRuntime() *runtime {
	return &runtime{}
}

// options wires the runtime into a context as its session store and
// generator registry.
func (r *runtime) options() []cli.Option {
	return []cli.Option{
		cli.WithSessions(r),
		cli.WithTypes(record.Default),
		cli.WithGenerators(r),
	}
}

// Config reads and validates config.yml. A missing file yields the default
// configuration.
func (r *runtime) Config() (*config.Config, error) {
	if r.cfg != nil {
		return r.cfg, nil
	}

	cfgPath, err := settingPath("config")
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	storePath, err := settingPath("store")
	if err != nil {
		return nil, fmt.Errorf("resolving store path: %w", err)
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	r.cfgPath, r.storePath, r.cfg = cfgPath, storePath, cfg
	return cfg, nil
}

// Session implements cli.SessionStore.
func (r *runtime) Session(label string) (*session.Session, error) {
	if r.store == nil {
		cfg, err := r.Config()
		if err != nil {
			return nil, err
		}
		store, err := session.Open(r.storePath, cfg.SessionDescriptors(), record.Default)
		if err != nil {
			return nil, err
		}
		r.store = store
	}
	return r.store.Session(label)
}

// Generator implements cli.GeneratorRegistry.
func (r *runtime) Generator(name string) (*generator.Profile, error) {
	cfg, err := r.Config()
	if err != nil {
		return nil, err
	}
	return cfg.Generator(name)
}

// save writes the configuration back to config.yml.
func (r *runtime) save() error {
	if r.cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}
	res, err := config.Validate(r.cfg)
	if err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return err
	}
	return config.Save(r.cfg, r.cfgPath)
}

func (r *runtime) Close() error {
	if r.store == nil {
		return nil
	}
	err := r.store.Close()
	r.store = nil
	return err
}

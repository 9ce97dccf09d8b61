// Package doctor implements health checks for a kbsecret installation.
//
// It verifies that config.yml parses and matches the schema, that every
// generator profile can produce a secret, that the record store opens and
// every configured session's records decode, and that the history log is
// writable.
package doctor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kbsecret/kbsecret/internal/config"
	"github.com/kbsecret/kbsecret/internal/record"
	"github.com/kbsecret/kbsecret/internal/session"
)

// Status represents the outcome of a single check.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusWarn Status = "warn"
	StatusSkip Status = "skip"
)

// CheckResult is the outcome of running a single check.
type CheckResult struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message"`
	Fix     string `json:"fix,omitempty"`
}

// Target names the files a kbsecret installation uses.
type Target struct {
	ConfigPath string
	StorePath  string
	AuditPath  string

	cfg *config.Config
}

// Check defines a single health check.
type Check struct {
	Name     string
	Category string // "config", "store", "history"
	Critical bool   // if true, failure => non-zero exit
	Run      func(t *Target) CheckResult
}

// Summary holds the aggregated results of all checks.
type Summary struct {
	Results    []CheckResult `json:"results"`
	TotalPass  int           `json:"totalPass"`
	TotalFail  int           `json:"totalFail"`
	TotalWarn  int           `json:"totalWarn"`
	TotalSkip  int           `json:"totalSkip"`
	HasFailure bool          `json:"hasFailure"`
}

// RunAll executes all checks in order and returns a summary.
func RunAll(t *Target) Summary {
	checks := AllChecks()
	results := make([]CheckResult, 0, len(checks))
	for _, c := range checks {
		results = append(results, c.Run(t))
	}
	return buildSummary(results, checks)
}

func buildSummary(results []CheckResult, checks []Check) Summary {
	s := Summary{Results: results}
	for i, r := range results {
		switch r.Status {
		case StatusPass:
			s.TotalPass++
		case StatusFail:
			s.TotalFail++
			if checks[i].Critical {
				s.HasFailure = true
			}
		case StatusWarn:
			s.TotalWarn++
		case StatusSkip:
			s.TotalSkip++
		}
	}
	return s
}

// AllChecks returns the ordered list of checks. Later checks skip when the
// configuration could not be loaded.
func AllChecks() []Check {
	return []Check{
		checkConfig(),
		checkGenerators(),
		checkStore(),
		checkHistory(),
	}
}

func checkConfig() Check {
	return Check{
		Name:     "config",
		Category: "config",
		Critical: true,
		Run: func(t *Target) CheckResult {
			r := CheckResult{Name: "config"}
			cfg, err := config.Load(t.ConfigPath)
			if errors.Is(err, fs.ErrNotExist) {
				t.cfg = config.Default()
				r.Status = StatusWarn
				r.Message = fmt.Sprintf("%s not found, using the default configuration", t.ConfigPath)
				r.Fix = "Run `kbsecret new-session <label>` to create it"
				return r
			}
			if err != nil {
				r.Status = StatusFail
				r.Message = err.Error()
				r.Fix = "Fix the YAML syntax in " + t.ConfigPath
				if errors.Is(err, config.ErrInvalid) {
					r.Fix = "Correct the fields reported above in " + t.ConfigPath
				}
				return r
			}
			t.cfg = cfg
			r.Status = StatusPass
			r.Message = fmt.Sprintf("%s is valid (%d sessions, %d generators)",
				t.ConfigPath, len(cfg.Sessions), len(cfg.Generators))
			return r
		},
	}
}

func checkGenerators() Check {
	return Check{
		Name:     "generators",
		Category: "config",
		Critical: true,
		Run: func(t *Target) CheckResult {
			r := CheckResult{Name: "generators"}
			if t.cfg == nil {
				r.Status = StatusSkip
				r.Message = "skipped: configuration not loaded"
				return r
			}
			for _, name := range t.cfg.GeneratorNames() {
				p, err := t.cfg.Generator(name)
				if err == nil {
					err = p.Validate()
				}
				if err == nil {
					_, err = p.Generate()
				}
				if err != nil {
					r.Status = StatusFail
					r.Message = err.Error()
					r.Fix = "Correct generator " + name + " in " + t.ConfigPath
					return r
				}
			}
			r.Status = StatusPass
			r.Message = fmt.Sprintf("%d generator profiles produce secrets", len(t.cfg.Generators))
			return r
		},
	}
}

func checkStore() Check {
	return Check{
		Name:     "store",
		Category: "store",
		Critical: true,
		Run: func(t *Target) CheckResult {
			r := CheckResult{Name: "store"}
			if t.cfg == nil {
				r.Status = StatusSkip
				r.Message = "skipped: configuration not loaded"
				return r
			}
			store, err := session.Open(t.StorePath, t.cfg.SessionDescriptors(), record.Default)
			if err != nil {
				r.Status = StatusFail
				r.Message = err.Error()
				r.Fix = "Make sure no other kbsecret process holds " + t.StorePath
				return r
			}
			defer store.Close()

			total := 0
			for _, label := range store.Labels() {
				s, err := store.Session(label)
				if err != nil {
					r.Status = StatusFail
					r.Message = err.Error()
					return r
				}
				records, err := s.Records()
				if err != nil {
					r.Status = StatusFail
					r.Message = fmt.Sprintf("session %s: %v", label, err)
					r.Fix = "Remove or repair the offending record with `kbsecret rm -s " + label + "`"
					return r
				}
				total += len(records)
			}
			r.Status = StatusPass
			r.Message = fmt.Sprintf("%s opens, %d records decode", t.StorePath, total)
			return r
		},
	}
}

func checkHistory() Check {
	return Check{
		Name:     "history",
		Category: "history",
		Run: func(t *Target) CheckResult {
			r := CheckResult{Name: "history"}
			dir := filepath.Dir(t.AuditPath)
			if err := os.MkdirAll(dir, 0o700); err != nil {
				r.Status = StatusWarn
				r.Message = fmt.Sprintf("cannot create %s: %v", dir, err)
				r.Fix = "Point KBSECRET_AUDIT at a writable location"
				return r
			}
			f, err := os.OpenFile(t.AuditPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				r.Status = StatusWarn
				r.Message = fmt.Sprintf("cannot write %s: %v", t.AuditPath, err)
				r.Fix = "Point KBSECRET_AUDIT at a writable location"
				return r
			}
			_ = f.Close()
			r.Status = StatusPass
			r.Message = t.AuditPath + " is writable"
			return r
		},
	}
}

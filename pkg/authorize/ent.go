package authorize

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	psqlwatcher "github.com/IguteChung/casbin-psql-watcher"
	casbin "github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/persist"
	entadapter "github.com/casbin/ent-adapter"
)

// policyChannel is the postgres NOTIFY channel shared by every instance.
const policyChannel = "melbooking_policy_update"

// policyLoadHealthy goes false when a watcher-triggered reload fails; the
// readiness probe reports it.
var policyLoadHealthy atomic.Bool

func init() {
	policyLoadHealthy.Store(true)
}

func IsPolicyHealthy() bool {
	return policyLoadHealthy.Load()
}

type CleanupFunc func(ctx context.Context)

// NewEnforcer builds a DistributedEnforcer whose policy rows live in the
// casbin database through the ent adapter. With PolicySyncEnabled a
// postgres watcher reloads policy whenever another instance changes it,
// e.g. when a superadmin moves an admin to another store.
func NewEnforcer(cfg Config, dsn string) (*casbin.DistributedEnforcer, CleanupFunc, error) {
	adapter, err := entadapter.NewAdapter("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("casbin adapter: %w", err)
	}

	e, err := casbin.NewDistributedEnforcer(cfg.CasbinModelPath, adapter)
	if err != nil {
		return nil, nil, fmt.Errorf("casbin enforcer: %w", err)
	}
	e.EnableAutoSave(true)
	e.EnableEnforce(true)

	if !cfg.PolicySyncEnabled {
		return e, func(context.Context) {}, nil
	}

	w, err := attachWatcher(e, dsn)
	if err != nil {
		return nil, nil, err
	}
	return e, func(context.Context) {
		slog.Info("closing casbin policy watcher")
		w.Close()
	}, nil
}

func attachWatcher(e *casbin.DistributedEnforcer, dsn string) (persist.Watcher, error) {
	w, err := psqlwatcher.NewWatcherWithConnString(context.Background(), dsn, psqlwatcher.Option{Channel: policyChannel})
	if err != nil {
		return nil, fmt.Errorf("policy watcher: %w", err)
	}

	reload := func(msg string) {
		slog.Debug("casbin policy update received", "message", msg)
		if err := e.LoadPolicy(); err != nil {
			slog.Error("policy reload failed", "error", err)
			policyLoadHealthy.Store(false)
			return
		}
		policyLoadHealthy.Store(true)
	}
	if err := w.SetUpdateCallback(reload); err != nil {
		w.Close()
		return nil, err
	}
	if err := e.SetWatcher(w); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

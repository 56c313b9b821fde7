// Package app is the composition root of the atlas explorer.
//
// # Overview
//
// New builds every long-lived component once and injects it where it is
// needed; nothing in the tree is a package-level singleton. Run wraps New,
// starts the optional background refresher and hands control to the UI.
//
// # Wiring
//
//	config.Load()              TOML file + ATLAS_* env
//	logging.New()              slog to the log file
//	metrics.New(registry)      cache + request + refresh counters
//	cache.New[any]()           TTL response cache
//	request.NewCoordinator()   supersession + retry
//	restcountries.NewClient()  data access
//	kv.OpenSQLite()            durable preferences, polled for foreign writes
//	theme / locale             persisted appearance
//	notify.New()               transient notices
//	state.NewStore()           derived collection view
//	favorites / comparison     persisted code sets
//	ui.Run()                   terminal explorer (blocks)
//
// # Background Refresh
//
// When refresh_interval_minutes is positive, StartRefresher reloads the
// collection on that cadence. Consecutive failures double the wait up to
// thirty minutes; the first success resets it.
//
// # Shutdown
//
// Close cancels in-flight requests, releases preference subscriptions,
// closes storage, writes the metrics file when metrics_file is set and
// finally closes the log file.
package app

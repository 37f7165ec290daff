// Package metrics exports session activity as Prometheus counters.
//
// Collector implements domain.Metrics on a private registry so several
// collectors can coexist in one process (tests, embedded use). Handler
// serves that registry for scraping.
package metrics

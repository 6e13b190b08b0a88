// Package web serves the collector's HTTP surface: the entry page, static assets, the
// health check and the event channel itself.
package web

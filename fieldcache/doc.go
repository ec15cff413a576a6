// Package fieldcache holds the per-feature caches of the field-sales app
// (daily plans, home page) and the read-through loader the screens use.
// Each cache is built once from Deps and handed to the code that loads the
// screen; nothing here is global.
package fieldcache

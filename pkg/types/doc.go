// Package types defines the catalog, record, and configuration types shared
// by the larder core, along with the standard errors its operations return.
package types

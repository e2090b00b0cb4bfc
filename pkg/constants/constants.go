// Package constants provides shared constants for the captable application.
package constants

// Numeric defaults
const (
	// DefaultPricePlaces is the default decimal precision for per-share prices
	DefaultPricePlaces = 8

	// DefaultMaxIterations bounds the price/share-count fixed-point loop
	DefaultMaxIterations = 100

	// OwnershipTolerance is the relative tolerance for ownership sums
	OwnershipTolerance = 1e-9
)

// Row labels
const (
	// OptionPoolCategory marks a holding as the unallocated option pool
	OptionPoolCategory = "Option pool"

	// MFNTag marks a note side letter as carrying a most-favored-nation clause
	MFNTag = "mfn"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "captable.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "captable.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
